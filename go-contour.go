// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Command go-contour turns GRAL and GRAMM result rasters into contour maps of
// a project. It runs a single tool given with -run and -args, or reads
// commands interactively.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/gralgui/go-contour/config"
	"github.com/gralgui/go-contour/geospatialfiles/raster"
	"github.com/gralgui/go-contour/tools"
)

var version = "0.2.0"

var buildstamp = "no build stamp provided"

var println = fmt.Println
var printf = fmt.Printf
var print = fmt.Print
var printerr = func(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
}
var printErrString = func(s string) {
	fmt.Fprintln(os.Stderr, s)
}
var pathSep = string(os.PathSeparator)
var commandArgs []string
var carryon bool
var workingdir string
var err error
var toolManager tools.PluginToolManager

func main() {
	var runTool string
	flag.StringVar(&runTool, "run", "", "Run a particular tool")
	var toolArgs string
	flag.StringVar(&toolArgs, "args", "", "Specify tool arguments, delimited by semicolons")
	var cwd string
	flag.StringVar(&cwd, "cwd", "", "Change the working directory")
	var configFile string
	flag.StringVar(&configFile, "config", config.DefaultFileName, "Read settings from a TOML file")
	var listTools = false
	flag.BoolVar(&listTools, "listtools", false, "Lists all available tools")
	var toolHelp string
	flag.StringVar(&toolHelp, "toolhelp", "", "Prints help documentation for a tool")
	var toolArgsStr string
	flag.StringVar(&toolArgsStr, "toolargs", "", "Prints details about the arguments for a tool")
	var helpArg = false
	flag.BoolVar(&helpArg, "help", false, "Help")
	var versionFlag = false
	flag.BoolVar(&versionFlag, "version", false, "Version number")
	flag.Parse()

	cwd = strings.Replace(cwd, "\"", "", -1)
	runTool = strings.Replace(runTool, "\"", "", -1)

	if toolManager.Config, err = config.Load(configFile); err != nil {
		printerr(err)
		os.Exit(1)
	}

	if listTools {
		commandMap["listtools"]()
	} else if versionFlag {
		commandMap["version"]()
	} else if helpArg {
		commandMap["help"]()
	} else if toolHelp != "" {
		commandArgs = []string{"toolhelp", toolHelp}
		commandMap["toolhelp"]()
	} else if toolArgsStr != "" {
		commandArgs = []string{"toolargs", toolArgsStr}
		commandMap["toolargs"]()
	} else if runTool != "" {
		if len(strings.TrimSpace(cwd)) > 0 {
			changeWorkingDirectory(cwd)
		}
		if err = toolManager.RunWithArguments(strings.TrimSpace(runTool), splitArgs(toolArgs)); err != nil {
			printerr(err)
			os.Exit(1)
		}
	} else {
		// run it in command line mode
		println(getHeaderText("Welcome to go-contour"))
		consolereader := bufio.NewReader(os.Stdin)
		toolManager.Input = consolereader
		carryon = true

		// This is the main command loop.
		println("Type 'help' to review available commands and 'exit' to log out.")
		for carryon {
			print("Please enter a command: ")
			commandStr, err := consolereader.ReadString('\n')
			if err != nil {
				printerr(err)
				os.Exit(0)
			}
			commandStr = strings.TrimSpace(commandStr)
			if len(commandStr) > 0 {
				commandArgs = strings.Fields(commandStr)
				if cmd, ok := commandMap[strings.ToLower(commandArgs[0])]; ok {
					cmd()
				} else {
					printerr(fmt.Errorf("unrecognized command '%s', type 'help' for details...", commandArgs[0]))
				}
			} else {
				printErrString("Empty command, type 'help' for details...")
			}
		}
	}
}

// splitArgs splits a tool argument list at semicolons. Map names carry a
// colon and file names may hold spaces, so nothing else separates.
func splitArgs(s string) []string {
	s = strings.TrimSpace(strings.Replace(s, "%s", " ", -1))
	if s == "" {
		return []string{}
	}
	args := strings.Split(s, ";")
	for i := range args {
		args[i] = strings.TrimSpace(strings.Trim(args[i], "\""))
	}
	return args
}

var helpMap map[string][]string
var commandMap map[string]func()

func init() {
	toolManager = tools.PluginToolManager{Config: config.Default()}
	toolManager.InitializeTools()

	// set the current working directory
	if workingdir, err = os.Getwd(); err != nil {
		println("Error")
	}

	helpMap = make(map[string][]string)
	helpMap["clear"] = []string{"Clears the screen (also 'c', 'cls', or 'clr')"}
	helpMap["help"] = []string{"Prints a list of available commands (also 'h')"}
	helpMap["exit"] = []string{"Leaves go-contour (also 'logout' or 'esc')"}
	helpMap["rasterformats"] = []string{"Prints the GRAL/GRAMM result formats that can be contoured"}
	helpMap["version"] = []string{"Prints version information (also 'v')"}
	helpMap["cwd"] = []string{"Changes the directory raster files are read from (also 'cd' or 'dir'),", " e.g. cwd /home/gral/project/Maps/"}
	helpMap["pwd"] = []string{"Prints the working directory (also 'dir')"}
	helpMap["run"] = []string{"Runs a tool on the project (also 'r'),",
		" e.g. run CreateContourMap  or  run CreateContourMap \"Mean_NOx_101.txt;;banded\""}
	helpMap["listtools"] = []string{"Lists the contour map and receptor tools"}
	helpMap["licence"] = []string{"Prints the licence"}
	helpMap["toolargs"] = []string{"Prints the argument descriptions for a tool, e.g. toolargs ExportContours"}
	helpMap["toolhelp"] = []string{"Prints help documentation for a tool,", " e.g. toolhelp CreateContourMap"}
	helpMap["settings"] = []string{"Prints the project settings in use (canvas, fill mode, ramp, project directory)"}

	commandMap = make(map[string]func())
	commandMap["toolhelp"] = func() {
		if len(commandArgs) > 1 {
			s, err := toolManager.GetToolHelp(commandArgs[1])
			if err != nil {
				printf("Unrecognized tool name '%s'. Type 'listtools' for a list of available tools.\n", commandArgs[1])
			} else {
				println(s)
			}
		} else {
			println("Tool name not specified, e.g. toolhelp CreateContourMap")
		}
	}
	commandMap["clear"] = func() {
		callClear()
	}
	commandMap["clr"] = commandMap["clear"]
	commandMap["cls"] = commandMap["clear"]
	commandMap["c"] = commandMap["clear"]
	commandMap["help"] = func() {
		// first sort the commands alphabetically
		keys := make([]string, 0, len(helpMap))
		for key := range helpMap {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		println("The following commands are recognized:")
		for _, key := range keys {
			val := helpMap[key]
			println(trailingSpaces(key, 15) + val[0])
			for i := 1; i < len(val); i++ {
				println(trailingSpaces("", 15) + val[i])
			}
		}
	}
	commandMap["h"] = commandMap["help"]
	commandMap["exit"] = func() {
		carryon = false
		println("Goodbye for now")
		os.Exit(0)
	}
	commandMap["logout"] = commandMap["exit"]
	commandMap["esc"] = commandMap["exit"]
	commandMap["run"] = func() {
		if len(commandArgs) == 2 {
			err = toolManager.Run(commandArgs[1])
		} else if len(commandArgs) > 2 { // there are specified arguments
			s := strings.Join(commandArgs[2:], " ")
			err = toolManager.RunWithArguments(strings.TrimSpace(commandArgs[1]), splitArgs(s))
		} else {
			println("Tool name not specified, e.g. run CreateContourMap")
			return
		}
		if err == tools.ErrUnknownTool {
			printf("Unrecognized tool name '%s'. Type 'listtools' for a list of available tools.\n", commandArgs[1])
		} else if err != nil {
			printerr(err)
		}
	}
	commandMap["r"] = commandMap["run"]
	commandMap["rasterformats"] = func() {
		m := raster.GetMapOfFormatsAndExtensions()
		keys := make([]string, 0, len(m))
		for key := range m {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		println("The following raster formats are supported for reading:")
		for _, key := range keys {
			println(trailingSpaces(key, 20), m[key])
		}
	}
	commandMap["version"] = func() {
		printf("go-contour version %s.%s\n", version, buildstamp)
	}
	commandMap["v"] = commandMap["version"]
	commandMap["settings"] = func() {
		c := toolManager.Config
		printf("Canvas:          %d x %d\n", c.Canvas.Width, c.Canvas.Height)
		printf("Fill mode:       %s\n", c.FillMode)
		printf("Colour ramp:     %s (recolor %v)\n", c.Ramp, c.Recolor)
		printf("Workers:         %d\n", c.Workers)
		printf("Project:         %s (locked %v)\n", c.ProjectDir, c.ProjectLocked)
		printf("Min. receptor h: %g\n", c.MinReceptorHeight)
	}
	commandMap["pwd"] = func() {
		println("Working directory:", workingdir)
	}
	commandMap["cwd"] = func() {
		if len(commandArgs) > 1 {
			// directories with spaces arrive in pieces
			changeWorkingDirectory(strings.Join(commandArgs[1:], " "))
		} else {
			println("A directory must be specified after the 'cwd' keyword.")
		}
	}
	commandMap["cd"] = commandMap["cwd"]
	commandMap["dir"] = func() {
		if len(commandArgs) > 1 {
			commandMap["cwd"]()
		} else {
			commandMap["pwd"]()
		}
	}

	commandMap["listtools"] = func() {
		pt := toolManager.GetListOfTools()
		plugs := make([]string, 0, len(pt))
		for _, value := range pt {
			plugs = append(plugs, trailingSpaces(value.GetName(), 20)+value.GetDescription())
		}
		sort.Strings(plugs)
		printf("The following %v tools are available:\n", len(pt))
		for _, value := range plugs {
			println(value)
		}
	}
	commandMap["licence"] = func() {
		println(licenceText)
	}
	commandMap["toolargs"] = func() {
		if len(commandArgs) > 1 {
			argDescriptions, err := toolManager.GetToolArgDescriptions(commandArgs[1])
			if err != nil {
				printf("Unrecognized tool name '%s'. Type 'listtools' for a list of available tools.\n", commandArgs[1])
			} else {
				printf("The following arguments are listed for '%s':\n", commandArgs[1])
				for _, val := range argDescriptions {
					println(val)
				}
			}
		} else {
			println("Tool name not specified, e.g. toolargs CreateContourMap")
		}
	}
}

var clear map[string]func()

func init() {
	clear = make(map[string]func())
	clear["linux"] = func() {
		cmd := exec.Command("clear")
		cmd.Stdout = os.Stdout
		cmd.Run()
	}
	clear["darwin"] = clear["linux"]
	clear["windows"] = func() {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = os.Stdout
		cmd.Run()
	}
}

func callClear() {
	value, ok := clear[runtime.GOOS]
	if ok {
		value()
		println(getHeaderText("Welcome to go-contour!"))
	} else {
		println("Clearing the screen is unsupported for your platform.")
	}
}

var changeWorkingDirectory = func(wd string) {
	// see if the string is an existing directory
	if _, err := os.Stat(wd); err != nil {
		if os.IsNotExist(err) {
			// see if appending this directory to the working directory works
			if strings.HasPrefix(wd, pathSep) || strings.HasPrefix(wd, "."+pathSep) {
				if strings.HasPrefix(wd, "."+pathSep) {
					// remove the dot
					wd = wd[1:]
				}
				s := strings.TrimSuffix(workingdir, pathSep) + wd
				if _, err := os.Stat(s); err != nil {
					if os.IsNotExist(err) {
						println("Directory does not exist.")
					} else {
						println(err)
					}
				} else {
					workingdir = s
					toolManager.SetWorkingDirectory(s)
				}
			}
		} else {
			println(err)
		}
	} else {
		workingdir = wd
		toolManager.SetWorkingDirectory(wd)
	}
}

var licenceText = `go-contour builds contour maps from GRAL and GRAMM result rasters and
edits the receptor points of a GRAL project. It grew out of GoSpatial.

Copyright (c) 2015 The GoSpatial Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.`

func getHeaderText(str string) string {
	bar := strings.Repeat("*", len(str)+4)
	return bar + "\n* " + str + " *\n" + bar
}

var trailingSpaces = func(s string, maxLen int) string {
	return s + strings.Repeat(" ", max(maxLen-len(s), 0)+1)
}

// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// This file was originally created by John Lindsay<jlindsay@uoguelph.ca>,
// Feb. 2015.

// Package tools holds the command line tools of go-contour. Each tool
// collects its arguments interactively or takes them as a list, and works
// on the project of the tool manager.
package tools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gralgui/go-contour/config"
	"github.com/gralgui/go-contour/drawing"
)

// Output receives everything the tools print.
var Output io.Writer = os.Stdout

var println = func(a ...interface{}) {
	fmt.Fprintln(Output, a...)
}
var printf = func(format string, a ...interface{}) {
	fmt.Fprintf(Output, format, a...)
}
var pathSep string = string(os.PathSeparator)

var ErrUnknownTool = errors.New("Unrecognized tool name. Type 'listtools' for a list of available tools.")

// An ArgumentError reports a missing or malformed tool argument.
type ArgumentError struct {
	Tool, Arg, Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: argument %s %s", e.Tool, e.Arg, e.Reason)
}

type PluginToolManager struct {
	workingDirectory string
	mapOfPluginTools map[string]PluginTool
	Config           config.Config
	// Input is read by tools collecting their arguments interactively.
	Input   io.Reader
	reader  *bufio.Reader
	objects *drawing.List
}

func (ptm *PluginToolManager) InitializeTools() {
	// each new tool needs a two-line entry below
	ptm.mapOfPluginTools = make(map[string]PluginTool)
	if ptm.Input == nil {
		ptm.Input = os.Stdin
	}

	ccm := new(CreateContourMap)
	ptm.mapOfPluginTools[strings.ToLower(ccm.GetName())] = ccm

	lcm := new(ListContourMaps)
	ptm.mapOfPluginTools[strings.ToLower(lcm.GetName())] = lcm

	rcm := new(RemoveContourMap)
	ptm.mapOfPluginTools[strings.ToLower(rcm.GetName())] = rcm

	ec := new(ExportContours)
	ptm.mapOfPluginTools[strings.ToLower(ec.GetName())] = ec

	er := new(EditReceptors)
	ptm.mapOfPluginTools[strings.ToLower(er.GetName())] = er
}

func (ptm *PluginToolManager) GetListOfTools() []PluginTool {
	ret := make([]PluginTool, len(ptm.mapOfPluginTools))
	i := 0
	for _, val := range ptm.mapOfPluginTools {
		ret[i] = val
		i++
	}
	return ret
}

func (ptm *PluginToolManager) Run(toolName string) error {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		println(GetHeaderText(tool.GetName()))
		tool.SetToolManager(ptm)
		err := tool.CollectArguments()
		runtime.GC()
		return err
	}
	return ErrUnknownTool
}

func (ptm *PluginToolManager) RunWithArguments(toolName string, args []string) error {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		println(GetHeaderText(tool.GetName()))
		tool.SetToolManager(ptm)
		err := tool.ParseArguments(args)
		runtime.GC()
		return err
	}
	return ErrUnknownTool
}

func (ptm *PluginToolManager) GetToolArgDescriptions(toolName string) ([]string, error) {
	trailingSpaces := func(s string, maxLen int) string {
		return s + strings.Repeat(" ", maxLen-len(s)+1)
	}

	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		descEntries := tool.GetArgDescriptions()
		lenToolName := 0
		lenDataType := 0
		for _, val := range descEntries {
			if len(val[0]) > lenToolName {
				lenToolName = len(val[0])
			}
			if len(val[1]) > lenDataType {
				lenDataType = len(val[1])
			}
		}

		lenToolName += 2
		lenDataType += 2

		ret := make([]string, len(descEntries))
		for i, val := range descEntries {
			ret[i] = trailingSpaces(val[0], lenToolName) + trailingSpaces(val[1], lenDataType) + val[2]
		}
		return ret, nil
	}
	return nil, ErrUnknownTool
}

func (ptm *PluginToolManager) GetToolHelp(toolName string) (string, error) {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		return tool.GetHelpDocumentation(), nil
	}
	return "", ErrUnknownTool
}

func (ptm *PluginToolManager) SetWorkingDirectory(wd string) {
	if !strings.HasSuffix(wd, pathSep) {
		wd += pathSep
	}
	ptm.workingDirectory = wd
}

// resolvePath prefixes bare file names with the working directory.
func (ptm *PluginToolManager) resolvePath(fileName string) string {
	fileName = strings.TrimSpace(fileName)
	if fileName != "" && !strings.Contains(fileName, pathSep) {
		fileName = ptm.workingDirectory + fileName
	}
	return fileName
}

// projectDir is the configured project directory, relative to the working
// directory unless absolute.
func (ptm *PluginToolManager) projectDir() string {
	dir := ptm.Config.ProjectDir
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) && ptm.workingDirectory != "" {
		dir = filepath.Join(ptm.workingDirectory, dir)
	}
	return dir
}

func (ptm *PluginToolManager) settingsDir() string {
	c := ptm.Config
	c.ProjectDir = ptm.projectDir()
	return c.SettingsDir()
}

func (ptm *PluginToolManager) receptorFile() string {
	c := ptm.Config
	c.ProjectDir = ptm.projectDir()
	return c.ReceptorFile()
}

// Objects returns the map objects of the project, loading them on first use.
func (ptm *PluginToolManager) Objects() (*drawing.List, error) {
	if ptm.objects != nil {
		return ptm.objects, nil
	}
	l, err := drawing.LoadProject(ptm.settingsDir())
	if os.IsNotExist(err) {
		l, err = new(drawing.List), nil
	}
	if err != nil {
		return nil, err
	}
	ptm.objects = l
	return l, nil
}

func (ptm *PluginToolManager) saveObjects() error {
	if ptm.objects == nil {
		return nil
	}
	return drawing.SaveProject(ptm.settingsDir(), ptm.objects)
}

type PluginTool interface {
	GetName() string
	GetDescription() string
	GetHelpDocumentation() string
	CollectArguments() error
	ParseArguments([]string) error
	GetArgDescriptions() [][]string
	SetToolManager(*PluginToolManager)
}

type PluginToolList []PluginTool

func (ptl PluginToolList) Len() int { return len(ptl) }

func (ptl PluginToolList) Less(i, j int) bool {
	return ptl[i].GetName() < ptl[j].GetName()
}

func (ptl PluginToolList) Swap(i, j int) {
	ptl[i], ptl[j] = ptl[j], ptl[i]
}

func GetHeaderText(str string) string {
	bar := strings.Repeat("*", len(str)+4)
	return bar + "\n* " + str + " *\n" + bar
}

var maxToolNameLength = 20

func getFormattedToolName(s string) string {
	l := len(s)
	if l > maxToolNameLength {
		l = maxToolNameLength
	}
	return strings.TrimSpace(s[:l])
}

var maxToolDescriptionLength = 55

func getFormattedToolDescription(s string) string {
	l := len(s)
	if l > maxToolDescriptionLength {
		l = maxToolDescriptionLength
	}
	return strings.TrimSpace(s[:l])
}

// readLine prints prompt and reads one trimmed line from Input.
func (ptm *PluginToolManager) readLine(prompt string) (string, error) {
	if ptm.reader == nil {
		if ptm.Input == nil {
			ptm.Input = os.Stdin
		}
		if br, ok := ptm.Input.(*bufio.Reader); ok {
			ptm.reader = br
		} else {
			ptm.reader = bufio.NewReader(ptm.Input)
		}
	}
	printf("\n%s", prompt)
	s, err := ptm.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// collect reads one answer per argument description.
func (ptm *PluginToolManager) collect(tool PluginTool) ([]string, error) {
	descs := tool.GetArgDescriptions()
	args := make([]string, len(descs))
	for i, d := range descs {
		s, err := ptm.readLine(d[2] + ": ")
		if err != nil {
			return nil, err
		}
		args[i] = s
	}
	return args, nil
}

// optionalArg reports whether an argument was left out.
func optionalArg(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "not specified"
}

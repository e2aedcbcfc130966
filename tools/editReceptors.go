// Copyright 2015 the GoSpatial Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"strconv"
	"strings"

	"github.com/gralgui/go-contour/receptors"
)

type EditReceptors struct {
	action      string
	values      []string
	toolManager *PluginToolManager
}

func (this *EditReceptors) GetName() string {
	s := "EditReceptors"
	return getFormattedToolName(s)
}

func (this *EditReceptors) GetDescription() string {
	s := "Lists, adds, changes and removes receptor points"
	return getFormattedToolDescription(s)
}

func (this *EditReceptors) GetHelpDocumentation() string {
	ret := `Edits Computation/Receptor.dat of the project. The first argument is the
action, the following ones depend on it:
  list
  add;name;x;y;height;displayValue
  set;position;name;x;y;height;displayValue
  remove;position
  clear
  nearest;x;y;radius
Positions start at 1. Heights are clamped to the minimum receptor height and
999 m, display values to +/-1e6. Locked projects can only be listed.`
	return ret
}

func (this *EditReceptors) SetToolManager(tm *PluginToolManager) {
	this.toolManager = tm
}

func (this *EditReceptors) GetArgDescriptions() [][]string {
	return [][]string{
		{"Action", "string", "list, add, set, remove, clear or nearest"},
		{"Values", "string list", "The values of the action, see toolhelp"},
	}
}

func (this *EditReceptors) ParseArguments(args []string) error {
	if len(args) < 1 || optionalArg(args[0]) {
		return &ArgumentError{this.GetName(), "Action", "is missing"}
	}
	this.action = strings.ToLower(strings.TrimSpace(args[0]))
	this.values = make([]string, 0, len(args)-1)
	for _, v := range args[1:] {
		this.values = append(this.values, strings.TrimSpace(v))
	}
	return this.Run()
}

func (this *EditReceptors) CollectArguments() error {
	action, err := this.toolManager.readLine("Action (list, add, set, remove, clear, nearest): ")
	if err != nil {
		return err
	}
	args := []string{action}
	if action != "list" && action != "clear" {
		values, err := this.toolManager.readLine("Values, separated by semicolons: ")
		if err != nil {
			return err
		}
		args = append(args, strings.Split(values, ";")...)
	}
	return this.ParseArguments(args)
}

func (this *EditReceptors) wantValues(n int) error {
	if len(this.values) != n {
		return &ArgumentError{this.GetName(), "Values", "has " + strconv.Itoa(len(this.values)) + " entries for " + this.action + ", want " + strconv.Itoa(n)}
	}
	return nil
}

func (this *EditReceptors) form(v []string) (receptors.Form, error) {
	f := receptors.Form{Name: v[0], X: v[1], Y: v[2]}
	var err error
	if f.Height, err = strconv.ParseFloat(v[3], 64); err != nil {
		return f, &ArgumentError{this.GetName(), "height", err.Error()}
	}
	if f.DisplayValue, err = strconv.ParseFloat(v[4], 64); err != nil {
		return f, &ArgumentError{this.GetName(), "displayValue", err.Error()}
	}
	return f, nil
}

func (this *EditReceptors) position(s string, e *receptors.Editor) error {
	n, err := strconv.Atoi(s)
	if err != nil || n > e.Len() || !e.Select(n) {
		return &ArgumentError{this.GetName(), "position", "is not between 1 and " + strconv.Itoa(e.Len())}
	}
	return nil
}

func (this *EditReceptors) floats(v []string) ([]float64, error) {
	out := make([]float64, len(v))
	for i, s := range v {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &ArgumentError{this.GetName(), "Values", err.Error()}
		}
		out[i] = f
	}
	return out, nil
}

func (this *EditReceptors) Run() error {
	cfg := this.toolManager.Config
	e, err := receptors.NewEditor(this.toolManager.receptorFile(), cfg.MinReceptorHeight)
	if err != nil {
		return err
	}
	e.Locked = cfg.ProjectLocked

	switch this.action {
	case "list":
		if err := this.wantValues(0); err != nil {
			return err
		}
		printReceptors(e.Items())
		return nil

	case "nearest":
		if err := this.wantValues(3); err != nil {
			return err
		}
		v, err := this.floats(this.values)
		if err != nil {
			return err
		}
		i, ok := e.Nearest(v[0], v[1], v[2])
		if !ok {
			println("No receptor within", v[2], "of", v[0], v[1])
			return nil
		}
		printReceptors(e.Items()[i : i+1])
		return nil

	case "add":
		if err := this.wantValues(5); err != nil {
			return err
		}
		f, err := this.form(this.values)
		if err != nil {
			return err
		}
		if err := e.Append(f); err != nil {
			return err
		}

	case "set":
		if err := this.wantValues(6); err != nil {
			return err
		}
		if err := this.position(this.values[0], e); err != nil {
			return err
		}
		f, err := this.form(this.values[1:])
		if err != nil {
			return err
		}
		if err := e.Save(f); err != nil {
			return err
		}

	case "remove":
		if err := this.wantValues(1); err != nil {
			return err
		}
		if err := this.position(this.values[0], e); err != nil {
			return err
		}
		if err := e.RemoveCurrent(); err != nil {
			return err
		}

	case "clear":
		if err := this.wantValues(0); err != nil {
			return err
		}
		if err := e.RemoveAll(); err != nil {
			return err
		}

	default:
		return &ArgumentError{this.GetName(), "Action", "must be list, add, set, remove, clear or nearest"}
	}

	if err := e.Commit(); err != nil {
		return err
	}
	printf("%d receptors saved\n", e.Len())
	return nil
}

func printReceptors(items []receptors.Receptor) {
	printf("%d receptors:\n", len(items))
	for _, r := range items {
		printf("  %-20s %12.2f %12.2f %7.1f %g\n", r.Name, r.X, r.Y, r.Height, r.DisplayValue)
	}
}

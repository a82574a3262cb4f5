// Package main provides the CLI entrypoint for annomerge.
//
// annomerge is a merged-annotation inspection tool that:
//   - Loads annotation type definitions from YAML
//   - Validates alias, mirror, and meta-annotation configuration
//   - Resolves merged attribute values for concrete annotated elements
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	flag "github.com/spf13/pflag"

	"annotation-merger/descriptor"
	"annotation-merger/lookup"
	"annotation-merger/mapping"
	"annotation-merger/merged"
	"annotation-merger/schema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "check":
		err = runCheck(os.Args[2:])
	case "resolve":
		err = runResolve(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("annomerge - merged-annotation inspection tool")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check    -f defs.yaml [--exclude T]...")
	fmt.Println("  resolve  -f defs.yaml -i instances.yaml [--type T] [--exclude T]... [--dump]")
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	defsPath := fs.StringP("file", "f", "", "annotation definitions YAML file")
	exclude := fs.StringSlice("exclude", nil, "annotation types excluded from merging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *defsPath == "" {
		return errors.New("check requires -f defs.yaml")
	}

	df, err := schema.LoadFile(*defsPath)
	if err != nil {
		return err
	}

	diags := schema.Validate(df)
	for _, w := range diags.Warnings {
		fmt.Println(w.Render())
	}

	if diags.HasErrors() {
		for _, e := range diags.Errors {
			fmt.Println(e.Render())
		}

		return fmt.Errorf("%d definition error(s)", len(diags.Errors))
	}

	reg, err := schema.NewRegistry(df)
	if err != nil {
		return err
	}

	builder := mapping.NewBuilder(reg, reg, mapping.ExcludeTypes(*exclude...))
	failed := 0

	for _, name := range reg.TypeNames() {
		if _, err := builder.Build(name); err != nil {
			fmt.Println(err)

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d annotation type(s) with invalid configuration", failed)
	}

	fmt.Printf("%d annotation type(s) ok\n", len(reg.TypeNames()))

	return nil
}

func runResolve(args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	defsPath := fs.StringP("file", "f", "", "annotation definitions YAML file")
	instPath := fs.StringP("instances", "i", "", "annotated elements YAML file")
	typeName := fs.String("type", "", "resolve only this annotation type")
	exclude := fs.StringSlice("exclude", nil, "annotation types excluded from merging")
	dump := fs.Bool("dump", false, "dump resolved values with full type detail")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *defsPath == "" || *instPath == "" {
		return errors.New("resolve requires -f defs.yaml and -i instances.yaml")
	}

	df, err := schema.LoadFile(*defsPath)
	if err != nil {
		return err
	}

	reg, err := schema.NewRegistry(df)
	if err != nil {
		return err
	}

	inf, err := schema.LoadInstanceFile(*instPath)
	if err != nil {
		return err
	}

	builder := mapping.NewBuilder(reg, reg, mapping.ExcludeTypes(*exclude...))
	cache := mapping.NewCache()

	for _, el := range inf.Elements {
		l := lookup.New(builder, cache, toHierarchy(el))

		queried := reg.TypeNames()
		if *typeName != "" {
			queried = []string{*typeName}
		}

		for _, qt := range queried {
			views, err := l.All(qt)
			if err != nil {
				return fmt.Errorf("element %q: %w", el.Name, err)
			}

			for _, view := range views {
				if err := printView(el.Name, view, *dump); err != nil {
					return fmt.Errorf("element %q: %w", el.Name, err)
				}
			}
		}
	}

	return nil
}

func toHierarchy(el schema.Element) *lookup.Hierarchy {
	levels := make([][]descriptor.Occurrence, 0, len(el.Levels))

	for _, lv := range el.Levels {
		occs := make([]descriptor.Occurrence, 0, len(lv.Annotations))
		for _, a := range lv.Annotations {
			occs = append(occs, descriptor.Occurrence{
				Type:   a.Type,
				Source: descriptor.MapSource(a.Values),
			})
		}

		levels = append(levels, occs)
	}

	return lookup.NewHierarchy(levels...)
}

func printView(element string, view *merged.View, dump bool) error {
	fmt.Printf("%s: @%s (depth %d)\n", element, view.Type().Name(), view.Node().Depth())

	names := make([]string, 0, len(view.Type().Attributes()))
	for _, attr := range view.Type().Attributes() {
		names = append(names, attr.Name)
	}

	sort.Strings(names)

	for _, name := range names {
		val, ok, err := view.Get(name)
		if err != nil {
			return err
		}

		if !ok {
			fmt.Printf("  %s: <absent>\n", name)
			continue
		}

		if dump {
			fmt.Printf("  %s: %s", name, spew.Sdump(val))
		} else {
			fmt.Printf("  %s: %v\n", name, val)
		}
	}

	return nil
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kryon-labs/kryonc/pkg/kry/codegen"
	"kryon-labs/kryonc/pkg/kry/registry"
)

var inspectFlags struct {
	showStrings bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.krb>",
	Short: "Inspect a compiled KRB binary",
	Long: `Decode a compiled KRB binary and print its contents.

The checksum and magic are verified before decoding; a corrupted file is
rejected. Elements print as an indented tree in file order.

Examples:
  # Show variables and the element tree
  kryonc inspect app.krb

  # Include the string table
  kryonc inspect --strings app.krb`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVarP(&inspectFlags.showStrings, "strings", "s", false, "print the string table")
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", args[0], err)
	}

	file, err := codegen.Decode(data)
	if err != nil {
		return err
	}

	fmt.Printf("%s: KRB version %d, %d bytes\n", args[0], file.Version, len(data))
	fmt.Printf("  %d strings, %d variables, %d elements\n",
		len(file.Strings), len(file.Variables), len(file.Elements))

	if inspectFlags.showStrings {
		fmt.Println("\nStrings:")
		for i, s := range file.Strings {
			fmt.Printf("  %4d  %q\n", i+1, s)
		}
	}

	if len(file.Variables) > 0 {
		fmt.Println("\nVariables:")
		for _, v := range file.Variables {
			reactive := ""
			if v.Reactive {
				reactive = "  reactive"
			}
			fmt.Printf("  %-24s %-8s %s%s\n", v.Name, variableTypeName(v.Type), v.Value, reactive)
		}
	}

	if len(file.Elements) > 0 {
		fmt.Println("\nElements:")
		depths := map[uint32]int{0: -1}
		for _, el := range file.Elements {
			depth := depths[el.ParentID] + 1
			depths[el.ID] = depth
			indent := strings.Repeat("  ", depth+1)

			fmt.Printf("%s%s #%d", indent, elementTypeName(el.TypeID), el.ID)
			if el.StyleID != 0 {
				fmt.Printf(" style=%q", file.StringAt(el.StyleID))
			}
			if el.ChildCount > 0 {
				fmt.Printf(" children=%d", el.ChildCount)
			}
			if el.EventCount > 0 {
				fmt.Printf(" events=%d", el.EventCount)
			}
			fmt.Println()

			for _, p := range el.Properties {
				fmt.Printf("%s  %s = %s\n", indent, p.Name, p.Value)
			}
		}
	}

	return nil
}

// variableTypeName renders a variable record's type byte.
func variableTypeName(t uint8) string {
	switch t &^ codegen.VarReactiveBit {
	case codegen.VarStaticString:
		return "string"
	case codegen.VarStaticInteger:
		return "int"
	case codegen.VarStaticFloat:
		return "float"
	case codegen.VarStaticBoolean:
		return "bool"
	default:
		return fmt.Sprintf("0x%02X", t)
	}
}

// elementTypeName renders an element type id, falling back to hex for
// custom elements whose names live only in the compiling process.
func elementTypeName(id uint32) string {
	if name, ok := registry.ElementName(id); ok {
		return name
	}
	return fmt.Sprintf("Custom(0x%04X)", id)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"mailtmpl/internal/domain/entities"
	"mailtmpl/internal/infrastructure/codec"
)

func readTemplateFile(path string) (*entities.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func runRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	locale := fs.String("locale", "", "locale to substitute (empty: raw template)")
	order := fs.String("order", "", "substitution order: longest-first or insertion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("render: expected one template file (or - for stdin)")
	}
	ord, err := entities.ParseSubstitutionOrder(*order)
	if err != nil {
		return err
	}
	doc, err := readTemplateFile(fs.Arg(0))
	if err != nil {
		return err
	}
	doc.SetSubstitutionOrder(ord)

	var l *entities.LocaleID
	if *locale != "" {
		if !doc.HasLocale(*locale) {
			fmt.Fprintf(os.Stderr, "⚠️ locale %q absente du fichier, template rendu tel quel\n", *locale)
		}
		id := entities.NormalizeLocale(*locale)
		l = &id
	}
	_, err = io.WriteString(out, doc.Render(l))
	return err
}

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	strict := fs.Bool("strict", false, "fail when findings are reported")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("check: expected at least one template file")
	}

	total := 0
	for _, path := range fs.Args() {
		doc, err := readTemplateFile(path)
		if err != nil {
			return err
		}
		findings := doc.Diagnose()
		total += len(findings)
		fmt.Fprintf(out, "%s: %d placeholder(s), locales %v\n", path, len(doc.Placeholders()), doc.Locales())
		for _, f := range findings {
			switch f.Kind {
			case entities.FindingMissingTranslation:
				fmt.Fprintf(out, "  %s: %s [%s]\n", f.Kind, f.Name, f.Locale)
			case entities.FindingBlankName:
				fmt.Fprintf(out, "  %s: #%d\n", f.Kind, f.Placeholder)
			default:
				fmt.Fprintf(out, "  %s: %s\n", f.Kind, f.Name)
			}
		}
	}
	if *strict && total > 0 {
		return fmt.Errorf("check: %d finding(s)", total)
	}
	return nil
}

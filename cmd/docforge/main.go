// Command docforge drives document generation from the terminal: list
// templates, inspect their fields, fill them interactively or from a JSON
// values file, and manage the contact store.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-docforge/pkg/config"
	"github.com/goliatone/go-docforge/pkg/contacts"
	"github.com/goliatone/go-docforge/pkg/docgen"
	"github.com/goliatone/go-docforge/pkg/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "fields":
		runFields(os.Args[2:])
	case "generate":
		runGenerate(os.Args[2:])
	case "contacts":
		runContacts(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: docforge <command> [flags]

Commands:
  list       List available templates
  fields     Show the manual-entry fields of a template
  generate   Generate a document from a template
  contacts   List or add auxiliary contacts`)
}

func setup(fs *flag.FlagSet, args []string) (config.Config, *docgen.Orchestrator) {
	configFlag := fs.String("config", "", "Path to a YAML configuration file")
	fs.Parse(args)

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fatal("load config: %v", err)
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	orch, err := docgen.FromConfig(cfg, logger)
	if err != nil {
		fatal("build orchestrator: %v", err)
	}
	return cfg, orch
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_, orch := setup(fs, args)

	templates, err := orch.ListTemplates()
	if err != nil {
		fatal("list templates: %v", err)
	}
	for _, path := range templates {
		fmt.Println(path)
	}
}

func runFields(args []string) {
	fs := flag.NewFlagSet("fields", flag.ExitOnError)
	templateFlag := fs.String("template", "", "Template path")
	_, orch := setupWithTemplate(fs, args, templateFlag)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	form, err := orch.Fields(ctx, *templateFlag)
	if err != nil {
		fatal("extract fields: %v", err)
	}
	for _, field := range form.Fields {
		fmt.Printf("%s\t%s\n", field.Key, field.Name)
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	templateFlag := fs.String("template", "", "Template path (prompted when empty)")
	valuesFlag := fs.String("values", "", "JSON file of field values keyed by sanitized key")
	contactFlag := fs.String("contact", "", "Contact name to inject into reserved placeholders")
	_, orch := setup(fs, args)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	templatePath := *templateFlag
	if templatePath == "" {
		templatePath = promptTemplate(orch)
	}

	form, err := orch.Fields(ctx, templatePath)
	if err != nil {
		fatal("extract fields: %v", err)
	}

	values := map[string]string{}
	if *valuesFlag != "" {
		values = loadValues(*valuesFlag)
	} else {
		values = promptValues(form)
	}

	contactName := *contactFlag
	if *valuesFlag == "" && contactName == "" {
		contactName = promptContact(orch)
	}

	result, err := orch.Generate(ctx, docgen.Request{
		TemplatePath: templatePath,
		Values:       values,
		ContactName:  contactName,
	})
	if err != nil {
		fatal("generate: %v", err)
	}
	fmt.Println(result.OutputPath)
}

func runContacts(args []string) {
	if len(args) < 1 {
		fatal("contacts: expected subcommand list or add")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("contacts list", flag.ExitOnError)
		_, orch := setup(fs, args[1:])
		all, err := orch.Contacts().List()
		if err != nil {
			fatal("list contacts: %v", err)
		}
		for _, c := range all {
			fmt.Printf("%s\t%s\t%s\n", c.Name, c.Email, c.Phone)
		}
	case "add":
		fs := flag.NewFlagSet("contacts add", flag.ExitOnError)
		name := fs.String("name", "", "Contact name")
		email := fs.String("email", "", "Contact email")
		phone := fs.String("phone", "", "Contact phone")
		_, orch := setup(fs, args[1:])
		if err := orch.Contacts().Add(contacts.Contact{Name: *name, Email: *email, Phone: *phone}); err != nil {
			fatal("add contact: %v", err)
		}
	default:
		fatal("contacts: unknown subcommand %q", args[0])
	}
}

func setupWithTemplate(fs *flag.FlagSet, args []string, templateFlag *string) (config.Config, *docgen.Orchestrator) {
	cfg, orch := setup(fs, args)
	if *templateFlag == "" {
		fatal("a -template path is required")
	}
	return cfg, orch
}

func promptTemplate(orch *docgen.Orchestrator) string {
	templates, err := orch.ListTemplates()
	if err != nil {
		fatal("list templates: %v", err)
	}
	if len(templates) == 0 {
		fatal("no templates found")
	}

	names := make([]string, len(templates))
	for i, path := range templates {
		names[i] = filepath.Base(path)
	}

	var choice string
	if err := survey.AskOne(&survey.Select{Message: "Template:", Options: names}, &choice); err != nil {
		fatal("prompt: %v", err)
	}
	for i, name := range names {
		if name == choice {
			return templates[i]
		}
	}
	return ""
}

func promptValues(form model.FormModel) map[string]string {
	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		var answer string
		if err := survey.AskOne(&survey.Input{Message: field.Label + ":"}, &answer); err != nil {
			fatal("prompt: %v", err)
		}
		values[string(field.Key)] = answer
	}
	return values
}

func promptContact(orch *docgen.Orchestrator) string {
	store := orch.Contacts()
	if store == nil {
		return ""
	}
	all, err := store.List()
	if err != nil || len(all) == 0 {
		return ""
	}

	const none = "(none)"
	options := []string{none}
	for _, c := range all {
		options = append(options, c.Name)
	}

	var choice string
	if err := survey.AskOne(&survey.Select{Message: "Contact:", Options: options}, &choice); err != nil {
		fatal("prompt: %v", err)
	}
	if choice == none {
		return ""
	}
	return choice
}

func loadValues(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read values file: %v", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		fatal("parse values file: %v", err)
	}
	return values
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

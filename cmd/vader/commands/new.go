package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/project"
)

var (
	newTemplate string
	newNoGit    bool
)

var newCmd = &cobra.Command{
	Use:   "new <directory>",
	Short: "Create a new Vader project",
	Long: `New creates a project directory from a template, with a vader.properties
file, and records it in a fresh git repository.

Templates:
  consola    console program (default)
  web        React component
  api        FastAPI service
  electron   Electron desktop application
  tkinter    Tkinter desktop application

Examples:
  vader new hola
  vader new tienda --template api
  vader new escritorio --template electron --no-git`,
	Args: cobra.ExactArgs(1),
	Run:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newTemplate, "template", "consola", "Project template")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Do not create a git repository")
}

func runNew(cmd *cobra.Command, args []string) {
	dir := args[0]
	tmpl, err := project.LookupTemplate(newTemplate)
	if err != nil {
		fail("unknown template", err)
	}
	files, err := tmpl.Files(filepath.Base(dir), cfg)
	if err != nil {
		fail("template failed", err)
	}
	hash, err := project.Scaffold(project.ScaffoldOptions{
		Dir:   dir,
		Files: files,
		NoGit: newNoGit,
	})
	if err != nil {
		fail("cannot create project", err)
	}

	fmt.Printf("Created %s project in %s\n", tmpl.Name, dir)
	if !newNoGit {
		fmt.Printf("Initial commit %s\n", hash.String()[:7])
	}
}

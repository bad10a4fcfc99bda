package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file.yaml]",
	Short: "Load authors and books from a YAML fixture",
	Long: `Insert the authors and books of a YAML fixture into MongoDB.

The file lists authors with the titles of their books:

  authors:
    - name: Ursula K. Le Guin
      books:
        - A Wizard of Earthsea
        - The Left Hand of Darkness`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	fixture, err := readFixture(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close(ctx)

	authors, books, err := store.SeedLibrary(ctx, fixture)
	if err != nil {
		return fmt.Errorf("seeded %d authors and %d books before failing: %w", authors, books, err)
	}

	fmt.Printf("Seeded %d authors and %d books into %s\n", authors, books, store.DatabaseName())
	return nil
}

// readFixture parses a library fixture and rejects empty names.
func readFixture(path string) (*models.LibraryFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var fixture models.LibraryFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(fixture.Authors) == 0 {
		return nil, fmt.Errorf("fixture %s has no authors", path)
	}
	for i, a := range fixture.Authors {
		if a.Name == "" {
			return nil, fmt.Errorf("author %d has no name", i+1)
		}
		for j, title := range a.Books {
			if title == "" {
				return nil, fmt.Errorf("author %q: book %d has no title", a.Name, j+1)
			}
		}
	}
	return &fixture, nil
}

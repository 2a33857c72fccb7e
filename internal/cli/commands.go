package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

func newListCommand(a *app) *cobra.Command {
	var (
		category string
		search   string
		pages    int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games, optionally filtered by category and search term",
		Example: `  catalog list
  catalog list --category shooter --pages 2
  catalog list --search pirate -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.ParseCategory(category)
			if err != nil {
				return err
			}
			if pages < 1 {
				return errors.New("--pages must be at least 1")
			}
			s, err := a.browser(cmd.Context())
			if err != nil {
				return err
			}
			s.SetFilter(cat)
			s.SetSearchTerm(search)
			for page := 1; page < pages && s.HasMore(); page++ {
				s.LoadMore()
			}
			resp := s.Snapshot()
			return render(a.out, a.format, resp, func() tableData { return pageTable(resp) })
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(catalog.CategoryAll), "category filter, one of the ids printed by the categories command")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search over title, genre, summary and developer")
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to reveal")
	return cmd
}

func newFeaturedCommand(a *app) *cobra.Command {
	var (
		count          int
		seed           uint64
		includeMissing bool
	)
	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Pick random games for a featured carousel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			var opts []catalog.Option
			if seed != 0 {
				opts = append(opts, catalog.WithRand(rand.New(rand.NewPCG(seed, seed))))
			}
			s, err := a.browser(cmd.Context(), opts...)
			if err != nil {
				return err
			}
			resp := domaingames.FeaturedResponse{Games: s.PickFeatured(count, !includeMissing)}
			return render(a.out, a.format, resp, func() tableData { return featuredTable(resp) })
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", catalog.DefaultFeaturedCount, "number of games to pick")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for a repeatable pick (0 picks a fresh one)")
	cmd.Flags().BoolVar(&includeMissing, "include-missing-thumbnails", false, "draw from every game, not only those with a thumbnail")
	return cmd
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one game by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid game id %q", args[0])
			}
			s, err := a.browser(cmd.Context())
			if err != nil {
				return err
			}
			game, ok := s.FindByID(id)
			if !ok {
				return fmt.Errorf("game %d not found", id)
			}
			return render(a.out, a.format, game, func() tableData { return gameTable(game) })
		},
	}
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp := catalog.Describe()
			return render(a.out, a.format, resp, func() tableData { return categoriesTable(resp) })
		},
	}
}

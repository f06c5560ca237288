package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/store"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every product",
		Long: `List every product in insertion order.

Example:
  catalog list
  catalog list --format json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			rows, err := e.catalog.List(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "failed to list products", err)
			}
			f := newFormatter(cmd, rootOpts)
			f.VerboseLog("%d products in %s", len(rows), e.cfg.Database.Path)
			return f.Render(rows, func(w io.Writer) {
				writeProductRows(w, rows)
			})
		},
	}
}

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Name  string
	Color string
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search products by name or color",
		Long: `Search products whose name, or whose colors, contain a substring.

Matching is case-insensitive for ASCII letters. Exactly one of --name and
--color must be given.

Example:
  catalog search --name Capizinha
  catalog search --color azul`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "substring of the product name")
	cmd.Flags().StringVar(&opts.Color, "color", "", "substring of one of the colors")

	return cmd
}

func runSearch(opts *SearchOptions, cmd *cobra.Command) error {
	byName := cmd.Flags().Changed("name")
	byColor := cmd.Flags().Changed("color")
	if byName == byColor {
		return NewExitError(ExitCommandError, "exactly one of --name or --color is required")
	}

	e, err := openEnv(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer e.Close()

	var rows []product.Product
	if byName {
		rows, err = e.catalog.SearchByName(cmd.Context(), opts.Name)
	} else {
		rows, err = e.catalog.SearchByColor(cmd.Context(), opts.Color)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to search products", err)
	}
	f := newFormatter(cmd, opts.RootOptions)
	f.VerboseLog("%d products matched", len(rows))
	return f.Render(rows, func(w io.Writer) {
		writeProductRows(w, rows)
	})
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a product",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := lookup(e, cmd, id)
			if err != nil {
				return err
			}
			return newFormatter(cmd, rootOpts).Render(p, func(w io.Writer) {
				writeProductDetail(w, p)
			})
		},
	}
}

// ProductOptions holds the field flags of add and edit.
type ProductOptions struct {
	*RootOptions
	Name        string
	Image       string
	Colors      string
	Sizes       string
	Description string
}

func (o *ProductOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Name, "name", "", "product name")
	cmd.Flags().StringVar(&o.Image, "image", "", "image URL")
	cmd.Flags().StringVar(&o.Colors, "colors", "", "comma separated colors")
	cmd.Flags().StringVar(&o.Sizes, "sizes", "", "comma separated sizes")
	cmd.Flags().StringVar(&o.Description, "description", "", "description")
}

// apply overwrites the fields of p whose flags were given.
func (o *ProductOptions) apply(cmd *cobra.Command, p product.Product) product.Product {
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = strings.TrimSpace(o.Name)
	}
	if flags.Changed("image") {
		p.Image = strings.TrimSpace(o.Image)
	}
	if flags.Changed("colors") {
		p.Colors = product.ParseInput(o.Colors)
	}
	if flags.Changed("sizes") {
		p.Sizes = product.ParseInput(o.Sizes)
	}
	if flags.Changed("description") {
		p.Description = o.Description
	}
	return p.Normalize()
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert a product",
		Long: `Insert a product. The name is required; the other fields are optional.

Example:
  catalog add --name "Mochila Capivara" --colors "Marrom,Bege" --sizes U`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.apply(cmd, product.Product{})
			if err := p.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid product", err)
			}

			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := e.catalog.Insert(cmd.Context(), p)
			if err != nil {
				return WrapExitError(ExitFailure, "failed to insert product", err)
			}
			p.ID = id
			return newFormatter(cmd, rootOpts).Render(p, func(w io.Writer) {
				fmt.Fprintf(w, "Inserted product %d\n", id)
			})
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a product",
		Long: `Update a product. Only the fields given as flags change.

Example:
  catalog edit 3 --name "Canetas Capizinha 2" --sizes "M,G"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			current, err := lookup(e, cmd, id)
			if err != nil {
				return err
			}
			p := opts.apply(cmd, current)
			if err := p.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid product", err)
			}
			if err := e.catalog.Update(cmd.Context(), p); err != nil {
				return WrapExitError(ExitFailure, "failed to update product", err)
			}
			return newFormatter(cmd, rootOpts).Render(p, func(w io.Writer) {
				fmt.Fprintf(w, "Updated product %d\n", id)
			})
		},
	}
	opts.bind(cmd)

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Long: `Delete a product. Deleting an id that does not exist does nothing.

Example:
  catalog delete 2`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.catalog.Delete(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "failed to delete product", err)
			}
			return newFormatter(cmd, rootOpts).Render(map[string]int64{"id": id}, func(w io.Writer) {
				fmt.Fprintf(w, "Deleted product %d\n", id)
			})
		},
	}
}

func lookup(e *env, cmd *cobra.Command, id int64) (product.Product, error) {
	p, err := e.catalog.Get(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return product.Product{}, WrapExitError(ExitFailure, fmt.Sprintf("no product with id %d", id), err)
	}
	if err != nil {
		return product.Product{}, WrapExitError(ExitFailure, "failed to load product", err)
	}
	return p, nil
}

// writeProductRows writes one "id<TAB>name<TAB>colors" line per product.
func writeProductRows(w io.Writer, rows []product.Product) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	for _, p := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Name, product.DisplayList(p.Colors))
	}
}

func writeProductDetail(w io.Writer, p product.Product) {
	fmt.Fprintf(w, "ID:          %d\n", p.ID)
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	fmt.Fprintf(w, "Image:       %s\n", p.Image)
	fmt.Fprintf(w, "Colors:      %s\n", product.DisplayList(p.Colors))
	fmt.Fprintf(w, "Sizes:       %s\n", product.DisplayList(p.Sizes))
	fmt.Fprintf(w, "Description: %s\n", p.Description)
}

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deppfellow/shopping-list/internal/lib/utils"
	"github.com/deppfellow/shopping-list/internal/model"
	"github.com/deppfellow/shopping-list/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateLayouts are the accepted --date formats.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return id, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use RFC 3339 or YYYY-MM-DD", value)
}

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return price, nil
}

func addItemFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "item name")
	flags.String("category", "", "category")
	flags.String("price", "", "price, e.g. 17.78")
	flags.Bool("checked", false, "mark the item as checked")
	flags.String("date", "", "date added (RFC 3339 or YYYY-MM-DD); defaults to now")
}

func newItemFromFlags(flags *pflag.FlagSet) (model.NewItem, error) {
	var item model.NewItem
	var err error

	if item.ItemName, err = flags.GetString("name"); err != nil {
		return item, err
	}
	if item.Category, err = flags.GetString("category"); err != nil {
		return item, err
	}
	if item.Checked, err = flags.GetBool("checked"); err != nil {
		return item, err
	}

	price, _ := flags.GetString("price")
	if item.Price, err = parsePrice(price); err != nil {
		return item, err
	}

	if date, _ := flags.GetString("date"); date != "" {
		if item.DateAdded, err = parseDate(date); err != nil {
			return item, err
		}
	}
	return item, nil
}

// patchFromFlags sets only the fields whose flags were given.
func patchFromFlags(flags *pflag.FlagSet) (model.ItemPatch, error) {
	var patch model.ItemPatch

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		patch.ItemName = &name
	}
	if flags.Changed("category") {
		category, _ := flags.GetString("category")
		patch.Category = &category
	}
	if flags.Changed("checked") {
		checked, _ := flags.GetBool("checked")
		patch.Checked = &checked
	}
	if flags.Changed("price") {
		value, _ := flags.GetString("price")
		price, err := parsePrice(value)
		if err != nil {
			return patch, err
		}
		patch.Price = &price
	}
	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		date, err := parseDate(value)
		if err != nil {
			return patch, err
		}
		patch.DateAdded = &date
	}
	return patch, nil
}

func newListCmd(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := r.services.ShoppingList.List(cmd.Context())
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), items)
		},
	}
}

func newGetCmd(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := r.services.ShoppingList.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), item)
		},
	}
}

func newAddCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert an item and print it with its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			newItem, err := newItemFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if err := validation.Validate(newItem); err != nil {
				return err
			}
			item, err := r.services.ShoppingList.Create(cmd.Context(), newItem)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), item)
		},
	}

	addItemFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newUpdateCmd(r *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			patch, err := patchFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if err := validation.Validate(patch); err != nil {
				return err
			}
			item, err := r.services.ShoppingList.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), item)
		},
	}

	addItemFlags(cmd.Flags())
	return cmd
}

func newDeleteCmd(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := r.services.ShoppingList.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), map[string]int64{"deleted": id})
		},
	}
}

// Command billctl inspects stored bills without going through the API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/config"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
	"github.com/mmynk/divvy/internal/storage/backend"
	"github.com/mmynk/divvy/pkg/logging"
)

// opener returns the store a command reads from.
type opener func(ctx context.Context) (storage.Store, error)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	// stdout carries command output, so logs stay quiet unless asked for
	level := cfg.Log.Level
	if level == "info" {
		level = "warn"
	}
	logging.Setup(level, cfg.Log.Format)

	app := newApp(os.Stdout, func(ctx context.Context) (storage.Store, error) {
		return backend.Open(ctx, cfg.Storage)
	})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "billctl:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer, open opener) *cli.App {
	return &cli.App{
		Name:     "billctl",
		Usage:    "inspect stored bills",
		Writer:   out,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list bills, newest first",
				Action: withStore(open, runList),
			},
			{
				Name:      "show",
				Usage:     "show a bill and who claimed each item",
				ArgsUsage: "<bill-id>",
				Action:    withStore(open, runShow),
			},
			{
				Name:      "split",
				Usage:     "show what everyone owes on a bill",
				ArgsUsage: "<bill-id>",
				Action:    withStore(open, runSplit),
			},
		},
	}
}

func withStore(open opener, run func(c *cli.Context, store storage.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		store, err := open(c.Context)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer store.Close()
		return run(c, store)
	}
}

func billArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("expected exactly one bill ID")
	}
	return c.Args().First(), nil
}

func runList(c *cli.Context, store storage.Store) error {
	bills, err := store.ListBills(c.Context)
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		fmt.Fprintln(c.App.Writer, "no bills")
		return nil
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPEOPLE\tITEMS\tTOTAL\tCREATED")
	for _, b := range bills {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			b.ID, b.Title, b.Status, b.PeopleCount, b.ItemCount, b.ItemsTotal,
			time.Unix(b.CreatedAt, 0).UTC().Format(time.DateTime))
	}
	return w.Flush()
}

func runShow(c *cli.Context, store storage.Store) error {
	id, err := billArg(c)
	if err != nil {
		return err
	}
	bill, err := store.GetBill(c.Context, id)
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%s (%s)\n", bill.Title, bill.ID)
	fmt.Fprintf(out, "status: %s  currency: %s  tax: %s%%  tip: %s%%\n",
		bill.Status, bill.Currency, bill.TaxRate, bill.TipRate)
	if bill.PaymentHandle != "" {
		fmt.Fprintf(out, "collector: %s\n", bill.PaymentHandle)
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tQTY\tUNIT\tLINE\tOWNERS")
	for _, it := range bill.Items {
		line, err := it.LineTotal()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", it.Name, it.Quantity, it.UnitPrice, line, ownerNames(bill, it))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, p := range bill.People {
		paid := ""
		if bill.HasPaid(p.ID) {
			paid = " (paid)"
		}
		fmt.Fprintf(out, "- %s%s\n", p.Name, paid)
	}
	return nil
}

func ownerNames(bill *models.Bill, it models.Item) string {
	if len(it.Owners) == 0 {
		return "-"
	}
	names := make([]string, 0, len(it.Owners))
	for _, id := range it.Owners {
		if p := bill.FindPerson(id); p != nil {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

func runSplit(c *cli.Context, store storage.Store) error {
	id, err := billArg(c)
	if err != nil {
		return err
	}
	bill, err := store.GetBill(c.Context, id)
	if err != nil {
		return err
	}
	split, err := calculator.CalculateSplit(bill)
	if err != nil {
		return err
	}
	coll := calculator.Collect(split, bill.PaidBy)

	out := c.App.Writer
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERSON\tSUBTOTAL\tTAX\tTIP\tTOTAL\tPAID")
	for i, ps := range split.People {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
			ps.Name, ps.Subtotal, ps.Tax, ps.Tip, ps.Total, coll.People[i].Paid)
	}
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t%s\t\n", split.AssignedSubtotal, split.Tax, split.Tip, split.Total)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(split.Unassigned) > 0 {
		fmt.Fprintf(out, "\nunassigned (%s):\n", split.UnassignedTotal)
		for _, u := range split.Unassigned {
			fmt.Fprintf(out, "- %s %s\n", u.Name, u.LineTotal)
		}
	}
	fmt.Fprintf(out, "\ncollected %s, outstanding %s\n", coll.Collected, coll.Outstanding)
	return nil
}

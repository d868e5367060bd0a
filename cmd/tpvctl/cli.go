package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/MrJamesThe3rd/tpv/internal/app"
	"github.com/MrJamesThe3rd/tpv/internal/config"
	"github.com/MrJamesThe3rd/tpv/internal/importer"
	"github.com/MrJamesThe3rd/tpv/internal/invoice"
	"github.com/MrJamesThe3rd/tpv/internal/money"
	"github.com/MrJamesThe3rd/tpv/internal/report"
)

type appKey struct{}

func newCLI(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "tpvctl",
		Usage:     "Administer the point-of-sale data store",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "storage",
				Usage:   "Storage driver (file, memory, sqlite, postgres, redis, s3)",
				EnvVars: []string{"STORAGE_DRIVER"},
			},
		},
		Before: openApp,
		After:  closeApp,
		Commands: []*cli.Command{
			{
				Name:      "import-state",
				Usage:     "Replace the stored document with a JSON state file",
				ArgsUsage: "<file|->",
				Action:    importState,
			},
			{
				Name:   "export-state",
				Usage:  "Print the stored document as indented JSON",
				Action: exportState,
			},
			{
				Name:      "import-products",
				Usage:     "Add products from a catalogue spreadsheet",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: string(importer.FormatCSV), Usage: "csv (;-separated) or tsv"},
					&cli.BoolFlag{Name: "skip-conflicts", Usage: "Add the new products even when some rows conflict"},
				},
				Action: importProducts,
			},
			{
				Name:  "export-invoices",
				Usage: "Write one invoice file per sale",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: "./facturas", Usage: "Output directory"},
					&cli.StringFlag{Name: "from", Usage: "First day included (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Usage: "Last day included (YYYY-MM-DD)"},
				},
				Action: exportInvoices,
			},
			{
				Name:  "report",
				Usage: "Summarise the sales of the current day, week or month",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "period", Value: string(report.Day), Usage: "day, week or month"},
				},
				Action: printReport,
			},
			{
				Name:      "adjust-stock",
				Usage:     "Add a signed whole number of units to a product's stock",
				ArgsUsage: "[--] <product-id> <units>",
				Action:    adjustStock,
			},
			{
				Name:   "reset-settings",
				Usage:  "Restore the default company settings",
				Action: resetSettings,
			},
		},
	}
}

func openApp(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if s := c.String("storage"); s != "" {
		cfg.Storage.Driver = s
	}

	a, err := app.New(c.Context, cfg)
	if err != nil {
		return err
	}

	c.Context = context.WithValue(c.Context, appKey{}, a)

	return nil
}

func closeApp(c *cli.Context) error {
	if a, ok := c.Context.Value(appKey{}).(*app.App); ok {
		return a.Close()
	}

	return nil
}

func appFrom(c *cli.Context) *app.App {
	return c.Context.Value(appKey{}).(*app.App)
}

func importState(c *cli.Context) error {
	r := c.App.Reader

	if name := c.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening state file: %w", err)
		}
		defer f.Close()

		r = f
	}

	state, err := appFrom(c).Adapter.Import(c.Context, r)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "imported %d products, %d customers, %d sales (invoice counter %d)\n",
		len(state.Products), len(state.Customers), len(state.Sales), state.InvoiceCounter)

	return nil
}

func exportState(c *cli.Context) error {
	return appFrom(c).Adapter.Export(c.Context, c.App.Writer)
}

func importProducts(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return errors.New("a catalogue file is required")
	}

	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("opening catalogue: %w", err)
	}
	defer f.Close()

	svc := appFrom(c).Importer

	preview, err := svc.Preview(importer.Format(c.String("format")), f)
	if err != nil {
		return err
	}

	for _, cf := range preview.Conflicts {
		fmt.Fprintf(c.App.Writer, "line %d: %q already exists as %s\n", cf.Line, cf.Incoming.Name, cf.Existing.ID)
	}

	if len(preview.Conflicts) > 0 && !c.Bool("skip-conflicts") {
		return fmt.Errorf("%d conflicting rows; rerun with --skip-conflicts to add the other %d", len(preview.Conflicts), len(preview.New))
	}

	n, err := svc.Confirm(c.Context, preview.New)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "added %d products\n", n)

	return nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}

	return &t, nil
}

func exportInvoices(c *cli.Context) error {
	from, err := parseDay(c.String("from"))
	if err != nil {
		return err
	}

	to, err := parseDay(c.String("to"))
	if err != nil {
		return err
	}

	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	items, err := appFrom(c).Invoices.Export(c.Context, invoice.Filter{StartDate: from, EndDate: to}, c.String("dir"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "exported %d invoices to %s\n%s", len(items), c.String("dir"), invoice.Summary(items))

	return nil
}

func printReport(c *cli.Context) error {
	p, err := report.ParsePeriod(c.String("period"))
	if err != nil {
		return err
	}

	rep := appFrom(c).Reports.Report(p)
	w := c.App.Writer

	fmt.Fprintf(w, "Periodo: %s (desde %s)\n", rep.Period, rep.From.Format("02/01/2006"))
	fmt.Fprintf(w, "Ventas: %d\n", rep.Count)
	fmt.Fprintf(w, "Ingresos: %s\n", money.Format(rep.TotalRevenue))
	fmt.Fprintf(w, "Mejor categoría: %s (%s)\n", rep.TopCategory.Name, money.Format(rep.TopCategory.Revenue))

	for _, cat := range rep.Categories {
		fmt.Fprintf(w, "  %-20s %s\n", cat.Name, money.Format(cat.Revenue))
	}

	return nil
}

func adjustStock(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return errors.New("usage: adjust-stock <product-id> <units>")
	}

	p, err := appFrom(c).Stock.Adjust(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s: stock %s\n", p.Name, p.Stock)

	return nil
}

func resetSettings(c *cli.Context) error {
	res, err := appFrom(c).Store.ResetSettings(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "settings reset to %s\n", res.Settings.CompanyName)

	return nil
}

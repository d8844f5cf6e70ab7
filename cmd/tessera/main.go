package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tesseradata/tessera/internal/render"
	"github.com/tesseradata/tessera/pkg/config"
	"github.com/tesseradata/tessera/pkg/dataset"
	"github.com/tesseradata/tessera/pkg/logger"
	"github.com/tesseradata/tessera/pkg/state"
	"github.com/tesseradata/tessera/pkg/transform"
	"github.com/tesseradata/tessera/pkg/visibility"

	// Import built-in transformers to register them
	_ "github.com/tesseradata/tessera/pkg/transform/builtins"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	var logLevel string
	var app config.AppConfig

	root := &cobra.Command{
		Use:   "tessera",
		Short: "Tessera - declarative table configuration and rendering engine",
		Long: `Tessera resolves declarative table configurations through a four-level
settings hierarchy (application, data type, table, column), tracks column
visibility by category, and renders rows through chainable cell transformers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = config.LoadApp()
			if err != nil {
				return err
			}
			level := logLevel
			if level == "" {
				level = app.LogLevel
			}
			if err := logger.Init(logger.Config{Level: level, Encoding: "console"}); err != nil {
				return err
			}
			if app.Settings.Placeholder != "" {
				transform.SetPlaceholder(app.Settings.Placeholder)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to the application settings")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Tessera v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Transformers command
	root.AddCommand(&cobra.Command{
		Use:   "transformers",
		Short: "List registered cell transformers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Registered transformers:")
			for _, name := range transform.Names() {
				fmt.Printf("  - %s\n", name)
			}
		},
	})

	// Validate command
	var configFile string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a data type configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dtc, err := loadDataType(configFile)
			if err != nil {
				return err
			}
			name := dtc.Name
			if name == "" {
				name = dtc.ID
			}
			fmt.Printf("Configuration valid: %s (%d tables)\n", name, len(dtc.Tables))
			return nil
		},
	}
	addConfigFlag(validateCmd, &configFile)
	root.AddCommand(validateCmd)

	// Tables command
	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables a configuration defines",
		RunE: func(cmd *cobra.Command, args []string) error {
			dtc, err := loadDataType(configFile)
			if err != nil {
				return err
			}
			for _, name := range dtc.TableNames() {
				table := dtc.Tables[name]
				title := table.DisplayName
				if title == "" {
					title = name
				}
				fmt.Printf("  %-20s %s (%d columns)\n", name, title, len(table.Columns))
			}
			return nil
		},
	}
	addConfigFlag(tablesCmd, &configFile)
	root.AddCommand(tablesCmd)

	// Columns command
	var tableName string
	columnsCmd := &cobra.Command{
		Use:   "columns",
		Short: "Show resolved columns and their initial visibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			dtc, err := loadDataType(configFile)
			if err != nil {
				return err
			}
			resolved, err := config.Resolve(app.Settings, dtc, tableName)
			if err != nil {
				return err
			}
			coord := visibility.New(visibility.Config{})
			coord.Initialize(resolved)

			for _, col := range resolved.Columns {
				marker := " "
				if coord.IsVisible(col.Column) {
					marker = "x"
				}
				line := fmt.Sprintf("  [%s] %-20s %s", marker, col.Column, col.DisplayName)
				if len(col.Categories) > 0 {
					line += fmt.Sprintf("  (categories: %s)", strings.Join(col.Categories, ", "))
				}
				if len(col.Transform) > 0 {
					types := make([]string, len(col.Transform))
					for i, spec := range col.Transform {
						types[i] = spec.Type
					}
					line += fmt.Sprintf("  (transform: %s)", strings.Join(types, ", "))
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	addConfigFlag(columnsCmd, &configFile)
	addTableFlag(columnsCmd, &tableName)
	root.AddCommand(columnsCmd)

	// Categories command
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "Show a table's categories and their default visibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			dtc, err := loadDataType(configFile)
			if err != nil {
				return err
			}
			resolved, err := config.Resolve(app.Settings, dtc, tableName)
			if err != nil {
				return err
			}
			if len(resolved.Categories) == 0 {
				fmt.Println("(no categories)")
				return nil
			}
			for _, cat := range resolved.Categories {
				marker := " "
				if cat.DefaultVisible {
					marker = "x"
				}
				fmt.Printf("  [%s] %-20s %s\n", marker, cat.ID, cat.Name)
			}
			return nil
		},
	}
	addConfigFlag(categoriesCmd, &configFile)
	addTableFlag(categoriesCmd, &tableName)
	root.AddCommand(categoriesCmd)

	// Render command
	var dataFile string
	var toggleCategories, toggleColumns []string
	var limit int
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render table rows to the terminal",
		Long: `Render rows through the resolved configuration: columns are filtered by
category visibility, cells run through the column transform chains, and the
result is printed as an aligned text grid.

Example:
  tessera render --config genes.yaml --table variants --data rows.csv \
    --toggle-category sequence`,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, resolved, err := buildView(app.Settings, configFile, tableName, toggleCategories, toggleColumns)
			if err != nil {
				return err
			}
			ds, err := dataset.LoadFile(dataFile)
			if err != nil {
				return err
			}

			gridCfg := render.DefaultGridConfig()
			gridCfg.Density = resolved.Settings.Density
			switch {
			case limit > 0:
				gridCfg.MaxRows = limit
			case limit == 0:
				gridCfg.MaxRows = resolved.Settings.PageSize
			}
			return render.New(transform.Default).Grid(os.Stdout, view, ds, gridCfg)
		},
	}
	addConfigFlag(renderCmd, &configFile)
	addTableFlag(renderCmd, &tableName)
	renderCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Path to a CSV, TSV, or JSON row file (required)")
	_ = renderCmd.MarkFlagRequired("data")
	renderCmd.Flags().StringSliceVar(&toggleCategories, "toggle-category", nil, "Category ids to toggle before rendering")
	renderCmd.Flags().StringSliceVar(&toggleColumns, "toggle-column", nil, "Column keys to toggle before rendering")
	renderCmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to print (0 = resolved page size, negative = all)")
	root.AddCommand(renderCmd)

	// Export command
	var exportFormat, outputFile string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export table rows as CSV or TSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := buildView(app.Settings, configFile, tableName, toggleCategories, toggleColumns)
			if err != nil {
				return err
			}
			ds, err := dataset.LoadFile(dataFile)
			if err != nil {
				return err
			}

			format := render.ExportFormat(exportFormat)
			if format != render.ExportCSV && format != render.ExportTSV {
				return fmt.Errorf("unsupported export format %q (csv, tsv)", exportFormat)
			}

			out := os.Stdout
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close() //nolint:errcheck // flushed before return
				out = f
			}
			return render.New(transform.Default).Export(out, view, ds, format)
		},
	}
	addConfigFlag(exportCmd, &configFile)
	addTableFlag(exportCmd, &tableName)
	exportCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Path to a CSV, TSV, or JSON row file (required)")
	_ = exportCmd.MarkFlagRequired("data")
	exportCmd.Flags().StringSliceVar(&toggleCategories, "toggle-category", nil, "Category ids to toggle before exporting")
	exportCmd.Flags().StringSliceVar(&toggleColumns, "toggle-column", nil, "Column keys to toggle before exporting")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, tsv)")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addConfigFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "config", "c", "", "Path or URL of the data type configuration (required)")
	_ = cmd.MarkFlagRequired("config")
}

func addTableFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "table", "t", "", "Table name within the configuration (required)")
	_ = cmd.MarkFlagRequired("table")
}

// loadDataType fetches and decodes a data type configuration from a local
// file or an http(s) URL.
func loadDataType(path string) (*config.DataTypeConfig, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		src, err := config.NewHTTPSource(config.HTTPSourceConfig{URL: path})
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return config.LoadSource(ctx, src)
	}
	return config.Load(path)
}

// buildView resolves the table, seeds visibility, applies requested toggles,
// and returns the render view backed by shared application state.
func buildView(settings config.Settings, configFile, tableName string, toggleCategories, toggleColumns []string) (render.View, *config.ResolvedTableConfig, error) {
	dtc, err := loadDataType(configFile)
	if err != nil {
		return render.View{}, nil, err
	}
	resolved, err := config.Resolve(settings, dtc, tableName)
	if err != nil {
		return render.View{}, nil, err
	}

	st := state.New()
	coord := visibility.New(visibility.Config{State: st})
	coord.Initialize(resolved)
	for _, id := range toggleCategories {
		coord.ToggleCategory(id)
	}
	for _, key := range toggleColumns {
		coord.ToggleColumn(key)
	}

	return render.View{Resolved: st.Resolved(), Visible: st.VisibleColumns()}, resolved, nil
}

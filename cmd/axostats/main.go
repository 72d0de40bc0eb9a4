package main

import (
	"fmt"
	"os"

	"axostats/app"
	"axostats/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional .env; the original scripts ran with everything embedded,
	// so every setting has a default and only INPUT_FILE is required.
	_ = godotenv.Load()

	var inputFile string
	var outputDir string
	var measurement string

	rootCmd := &cobra.Command{
		Use:   "axostats",
		Short: "Histology statistics pipeline for axolotl epidermis cell counts",
		Long: `Runs the full analysis over one spreadsheet: age recoding, descriptive
statistics, normality and group-comparison tests, and CSV/PNG exports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputFile != "" {
				os.Setenv("INPUT_FILE", inputFile)
			}
			if outputDir != "" {
				os.Setenv("OUTPUT_DIR", outputDir)
			}
			if measurement != "" {
				os.Setenv("MEASUREMENT_COLUMN", measurement)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			manifest, err := app.NewPipeline(cfg).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("run %s: %d rows, policy=%s, %d tables, %d images\n",
				manifest.RunID, manifest.Rows, manifest.Policy, len(manifest.Tables), len(manifest.Images))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&inputFile, "input", "", "input spreadsheet (xlsx or csv); overrides INPUT_FILE")
	rootCmd.Flags().StringVar(&outputDir, "outdir", "", "output directory; overrides OUTPUT_DIR")
	rootCmd.Flags().StringVar(&measurement, "measurement", "", "measurement column name; overrides MEASUREMENT_COLUMN")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package adm

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/quality-tools/qreport/internal/parser"
	"github.com/quality-tools/qreport/internal/quality"
)

type parseJUnitInput struct {
	skipFailed  bool
	skipPassed  bool
	skipSkipped bool
	xlsxFile    string
}

var parseJUnitArgs parseJUnitInput
var parseJUnitCmd = &cobra.Command{
	Use:     "parse-junit",
	Example: "qreport adm parse-junit junit.xml",
	Short:   "Parse a JUnit file and print its outcomes.",
	RunE:    parseJUnitRun,
}

func init() {
	parseJUnitCmd.Flags().BoolVar(&parseJUnitArgs.skipFailed, "skip-failed", false, "Skip printing on stdout the failed test names.")
	parseJUnitCmd.Flags().BoolVar(&parseJUnitArgs.skipPassed, "skip-passed", false, "Skip printing on stdout the passed test names.")
	parseJUnitCmd.Flags().BoolVar(&parseJUnitArgs.skipSkipped, "skip-skipped", false, "Skip printing on stdout the skipped test names.")
	parseJUnitCmd.Flags().StringVar(&parseJUnitArgs.xlsxFile, "xlsx", "", "Export a failure index workbook to the given path.")
}

func parseJUnitRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("please provide the path to the JUnit file")
	}

	junitFile := args[0]
	outcomes, err := parser.ParseJUnit(junitFile)
	if err != nil {
		return fmt.Errorf("error parsing JUnit file: %v", err)
	}
	snapshot := quality.Aggregate(quality.ParsedInputs{TestOutcomes: outcomes})
	counts := snapshot.TestCounts()

	fmt.Println("Summary:")
	fmt.Printf("- File: %s\n", junitFile)
	fmt.Printf("- Total: %d\n", counts.Total)
	fmt.Printf("- Pass: %d\n", counts.Passed)
	fmt.Printf("- Skipped: %d\n", counts.Skipped)
	fmt.Printf("- Failures: %d\n", counts.Failed+counts.Errored)

	var passed, skipped, failed []string
	for _, outcome := range outcomes {
		switch outcome.Status {
		case quality.TestStatusPassed:
			passed = append(passed, outcome.Name)
		case quality.TestStatusSkipped:
			skipped = append(skipped, outcome.Name)
		default:
			failed = append(failed, outcome.Name)
		}
	}

	if !parseJUnitArgs.skipPassed {
		fmt.Printf("\n#> Passed tests (%d): \n%s\n", len(passed), strings.Join(passed, "\n"))
	}
	if !parseJUnitArgs.skipFailed {
		fmt.Printf("\n#> Failed tests (%d): \n%s\n", len(failed), strings.Join(failed, "\n"))
	}
	if !parseJUnitArgs.skipSkipped {
		fmt.Printf("\n#> Skipped tests (%d): \n%s\n", len(skipped), strings.Join(skipped, "\n"))
	}

	if parseJUnitArgs.xlsxFile != "" {
		return saveFailureIndex(parseJUnitArgs.xlsxFile, snapshot.FailedTests())
	}
	return nil
}

// saveFailureIndex exports failed outcomes to a review workbook.
func saveFailureIndex(path string, failures []quality.TestOutcome) error {
	sheet := excelize.NewFile()
	defer saveSheet(sheet, path)

	sheetName := "failures"
	index, err := sheet.NewSheet(sheetName)
	if err != nil {
		return err
	}
	sheet.SetActiveSheet(index)
	if err := createSheet(sheet, sheetName); err != nil {
		return err
	}
	rowN := 2
	populateSheet(sheet, sheetName, failures, &rowN)
	return nil
}

func createSheet(sheet *excelize.File, sheetName string) error {
	header := map[string]string{
		"A1": "Index", "B1": "Test_Name", "C1": "Status", "D1": "Message"}

	for cell, value := range header {
		if err := sheet.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func populateSheet(sheet *excelize.File, sheetName string, failures []quality.TestOutcome, rowN *int) {
	for idx, outcome := range failures {
		for col, value := range map[string]interface{}{
			"A": idx + 1,
			"B": outcome.Name,
			"C": string(outcome.Status),
			"D": outcome.Message,
		} {
			cell := fmt.Sprintf("%s%d", col, *rowN)
			if err := sheet.SetCellValue(sheetName, cell, value); err != nil {
				log.Errorf("unable to set cell %s: %v", cell, err)
			}
		}
		*rowN++
	}
}

func saveSheet(sheet *excelize.File, sheetFile string) {
	if err := sheet.SaveAs(sheetFile); err != nil {
		log.Errorf("unable to save the workbook %s: %v", sheetFile, err)
	}
}

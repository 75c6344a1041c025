// package workbook encodes and decodes application state as a local
// spreadsheet file.
//
// Each plan kind occupies two sheets: a machine sheet holding one JSON
// blob for round-trip fidelity, and a friendly sheet holding the
// human-readable rendering from the flattening functions. Check-ins
// map one row per entry under a named header row. Import tolerates a
// workbook missing any expected sheet.
package workbook

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/shared"
)

// Sheet names, shared with the cloud document layout.
const (
	SheetPlanData      = "Plan_Data"
	SheetWorkoutPlan   = "Workout Plan"
	SheetNutritionData = "Nutrition_Data"
	SheetNutritionPlan = "Nutrition Plan"
	SheetCheckIns      = "CheckIns"
)

// Machine-sheet column keys.
const (
	planBlobKey      = "plan_json"
	nutritionBlobKey = "nutrition_json"
)

// CheckInHeader is the header row of the check-in sheet, identical in
// the local workbook and the cloud document.
var CheckInHeader = []string{"Date", "Weight (kg)", "Notes"}

// DataSheets lists every sheet a freshly provisioned document carries.
var DataSheets = []string{SheetWorkoutPlan, SheetNutritionPlan, SheetCheckIns, SheetPlanData, SheetNutritionData}

// Snapshot is the application state a workbook carries.
type Snapshot struct {
	Plan      *models.WorkoutPlan
	Nutrition *models.NutritionPlan
	CheckIns  []models.CheckIn
}

// ImportResult is a decoded workbook plus counts of what was found.
type ImportResult struct {
	Snapshot       Snapshot
	PlansLoaded    int
	CheckInsLoaded int
}

// Export builds a workbook from the snapshot. Plan sheets are written
// only for plans that are present; the check-in sheet is always
// written so a re-import finds its header.
func Export(snap Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	if snap.Plan != nil {
		blob, err := json.Marshal(snap.Plan)
		if err != nil {
			return nil, fmt.Errorf("failed to encode plan: %w", err)
		}
		if err := writeMachineSheet(f, SheetPlanData, planBlobKey, string(blob)); err != nil {
			return nil, err
		}
		if err := writeRows(f, SheetWorkoutPlan, FriendlyPlanRows(snap.Plan)); err != nil {
			return nil, err
		}
	}

	if snap.Nutrition != nil {
		blob, err := json.Marshal(snap.Nutrition)
		if err != nil {
			return nil, fmt.Errorf("failed to encode nutrition plan: %w", err)
		}
		if err := writeMachineSheet(f, SheetNutritionData, nutritionBlobKey, string(blob)); err != nil {
			return nil, err
		}
		if err := writeRows(f, SheetNutritionPlan, FriendlyNutritionRows(snap.Nutrition)); err != nil {
			return nil, err
		}
	}

	checkInRows := [][]any{{CheckInHeader[0], CheckInHeader[1], CheckInHeader[2]}}
	for _, c := range snap.CheckIns {
		checkInRows = append(checkInRows, []any{c.Date, c.WeightKg, c.Notes})
	}
	if err := writeRows(f, SheetCheckIns, checkInRows); err != nil {
		return nil, err
	}

	// Drop the default sheet excelize starts with.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	return f, nil
}

// ExportFile writes the snapshot's workbook to path.
func ExportFile(snap Snapshot, path string) error {
	f, err := Export(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ImportFile reads a workbook from path. A file that cannot be opened
// or whose machine blobs are malformed yields a [shared.ImportError];
// missing sheets are skipped, not fatal.
func ImportFile(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &shared.ImportError{Err: err}
	}
	defer f.Close()

	return decode(f)
}

// Import reads a workbook from an already open file.
func Import(f *excelize.File) (*ImportResult, error) {
	return decode(f)
}

func decode(f *excelize.File) (*ImportResult, error) {
	result := &ImportResult{}

	if rows, ok := sheetRows(f, SheetPlanData); ok {
		if blob := machineBlob(rows, planBlobKey); blob != "" {
			var plan models.WorkoutPlan
			if err := json.Unmarshal([]byte(blob), &plan); err != nil {
				return nil, &shared.ImportError{Err: fmt.Errorf("malformed plan blob: %w", err)}
			}
			result.Snapshot.Plan = &plan
			result.PlansLoaded++
		}
	}

	if rows, ok := sheetRows(f, SheetNutritionData); ok {
		if blob := machineBlob(rows, nutritionBlobKey); blob != "" {
			var plan models.NutritionPlan
			if err := json.Unmarshal([]byte(blob), &plan); err != nil {
				return nil, &shared.ImportError{Err: fmt.Errorf("malformed nutrition blob: %w", err)}
			}
			result.Snapshot.Nutrition = &plan
			result.PlansLoaded++
		}
	}

	if rows, ok := sheetRows(f, SheetCheckIns); ok {
		result.Snapshot.CheckIns = decodeCheckIns(rows)
		result.CheckInsLoaded = len(result.Snapshot.CheckIns)
	}

	return result, nil
}

// decodeCheckIns maps sheet rows to check-ins by header column name.
func decodeCheckIns(rows [][]string) []models.CheckIn {
	if len(rows) < 2 {
		return nil
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[name] = i
	}

	var checkIns []models.CheckIn
	for _, row := range rows[1:] {
		c := models.CheckIn{
			Date:     cell(row, cols, CheckInHeader[0]),
			WeightKg: cell(row, cols, CheckInHeader[1]),
			Notes:    cell(row, cols, CheckInHeader[2]),
		}
		// Skip blank padding and the legacy "no check-ins" placeholder.
		if c.Date == "" || c.Date == "No check-ins yet" {
			continue
		}
		checkIns = append(checkIns, c)
	}
	return checkIns
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// sheetRows returns the rows of a sheet, reporting false when the
// sheet is absent so callers can skip that section.
func sheetRows(f *excelize.File, name string) ([][]string, bool) {
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx == -1 {
		return nil, false
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, false
	}
	return rows, true
}

// machineBlob finds the value under the named header column of a
// machine sheet.
func machineBlob(rows [][]string, key string) string {
	if len(rows) < 2 {
		return ""
	}
	for i, name := range rows[0] {
		if name == key && i < len(rows[1]) {
			return rows[1][i]
		}
	}
	return ""
}

func writeMachineSheet(f *excelize.File, name, key, blob string) error {
	return writeRows(f, name, [][]any{{key}, {blob}})
}

func writeRows(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(name, cellRef, &row); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}
	return nil
}

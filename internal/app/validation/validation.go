package validation

import (
	"github.com/init-pkg/siot-loader/domain/app"
	mapping_service "github.com/init-pkg/siot-loader/internal/app/mapping/general"
)

// Validate lists the required fields rec lacks, in required order. Absent,
// blank and "nan"/"none" values all count as missing.
func Validate(rec app.Record, required []string) app.ValidationResult {
	var missing []string
	for _, name := range required {
		v, ok := rec.Values[name]
		if !ok || mapping_service.IsBlankLike(v) {
			missing = append(missing, name)
		}
	}
	return app.ValidationResult{OK: len(missing) == 0, Missing: missing}
}

// Partition splits records into valid ones and invalid row reports, keeping
// input order in both.
func Partition(records []app.Record, required []string) ([]app.Record, []app.InvalidRow) {
	var (
		valid   []app.Record
		invalid []app.InvalidRow
	)
	for _, rec := range records {
		res := Validate(rec, required)
		if res.OK {
			valid = append(valid, rec)
			continue
		}
		invalid = append(invalid, app.InvalidRow{
			RowNumber: rec.RowNumber,
			SheetRow:  rec.SheetRow,
			Missing:   res.Missing,
		})
	}
	return valid, invalid
}

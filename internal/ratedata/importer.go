package ratedata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/opentariff/tariff/internal/tariff/model"
)

const batchSize = 500

// FileSet names the rate files one load run consumes.
type FileSet struct {
	Classifications   string
	GeneralRates      string
	PreferentialRates string
	AntiDumping       string
	ConcessionOrders  string
	GstProvisions     string
}

// DefaultFileSet returns the conventional file names.
func DefaultFileSet() FileSet {
	return FileSet{
		Classifications:   "classification_codes.csv",
		GeneralRates:      "general_duty_rates.csv",
		PreferentialRates: "preferential_rates.csv",
		AntiDumping:       "anti_dumping_measures.csv",
		ConcessionOrders:  "concession_orders.csv",
		GstProvisions:     "gst_exemption_provisions.csv",
	}
}

// Importer loads rate data files into the database. Each run replaces
// the full contents of every table in a single transaction, so readers
// always see an internally consistent snapshot.
type Importer struct {
	db  *gorm.DB
	src Source
}

func NewImporter(db *gorm.DB, src Source) *Importer {
	return &Importer{db: db, src: src}
}

// ImportAll loads every rate file in the set.
func (im *Importer) ImportAll(ctx context.Context, files FileSet) error {
	classifications, err := decodeFromSource(ctx, im.src, files.Classifications, decodeClassifications)
	if err != nil {
		return err
	}
	generalRates, err := decodeFromSource(ctx, im.src, files.GeneralRates, decodeGeneralRates)
	if err != nil {
		return err
	}
	prefRates, err := decodeFromSource(ctx, im.src, files.PreferentialRates, decodePreferentialRates)
	if err != nil {
		return err
	}
	measures, err := decodeFromSource(ctx, im.src, files.AntiDumping, decodeAntiDumpingMeasures)
	if err != nil {
		return err
	}
	orders, err := decodeFromSource(ctx, im.src, files.ConcessionOrders, decodeConcessionOrders)
	if err != nil {
		return err
	}
	provisions, err := decodeFromSource(ctx, im.src, files.GstProvisions, decodeGstProvisions)
	if err != nil {
		return err
	}

	return im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceTable(tx, &model.GstExemptionProvision{}, provisions); err != nil {
			return err
		}
		if err := replaceTable(tx, &model.ConcessionOrder{}, orders); err != nil {
			return err
		}
		if err := replaceTable(tx, &model.AntiDumpingMeasure{}, measures); err != nil {
			return err
		}
		if err := replaceTable(tx, &model.PreferentialRate{}, prefRates); err != nil {
			return err
		}
		if err := replaceTable(tx, &model.GeneralDutyRate{}, generalRates); err != nil {
			return err
		}
		return replaceTable(tx, &model.ClassificationCode{}, classifications)
	})
}

// decodeFromSource opens one named file from the source and decodes it.
func decodeFromSource[T any](ctx context.Context, src Source, name string, decode func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	slog.Info("decoded rate file", "file", name, "records", len(records))
	return records, nil
}

// replaceTable swaps the full contents of a table for the decoded
// records inside the surrounding transaction.
func replaceTable[T any](tx *gorm.DB, tableModel *T, records []T) error {
	if err := tx.Where("1 = 1").Delete(tableModel).Error; err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}
	if len(records) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	return nil
}

// csvRows reads all data rows of a CSV file, skipping the header and
// enforcing a fixed column count.
func csvRows(r io.Reader, columns int) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty, expected a header row")
	}
	return rows[1:], nil
}

func parseDate(value string, row int, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("row %d: invalid %s %q: %w", row, field, value, err)
	}
	return t, nil
}

func parseOptionalDate(value string, row int, field string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value, row, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseRate(value string, row int, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("row %d: invalid %s %q: %w", row, field, value, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("row %d: invalid %s %q: must not be negative", row, field, value)
	}
	return d, nil
}

func parseBool(value string, row int, field string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("row %d: invalid %s %q: %w", row, field, value, err)
	}
	return b, nil
}

// decodeClassifications parses rows of
// code,description,level,parent_code,unit_of_qty,active
func decodeClassifications(r io.Reader) ([]model.ClassificationCode, error) {
	rows, err := csvRows(r, 6)
	if err != nil {
		return nil, err
	}

	records := make([]model.ClassificationCode, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2 // 1-based, after the header
		active, err := parseBool(row[5], rowNum, "active")
		if err != nil {
			return nil, err
		}
		rec := model.ClassificationCode{
			Code:        strings.TrimSpace(row[0]),
			Description: row[1],
			Level:       model.ClassificationLevel(strings.TrimSpace(row[2])),
			UnitOfQty:   strings.TrimSpace(row[4]),
			Active:      active,
		}
		if parent := strings.TrimSpace(row[3]); parent != "" {
			rec.ParentCode = &parent
		}
		if rec.Code == "" {
			return nil, fmt.Errorf("row %d: code must not be empty", rowNum)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeGeneralRates parses rows of
// classification_code,kind,rate,unit,effective_from,effective_to
func decodeGeneralRates(r io.Reader) ([]model.GeneralDutyRate, error) {
	rows, err := csvRows(r, 6)
	if err != nil {
		return nil, err
	}

	records := make([]model.GeneralDutyRate, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		rate, err := parseRate(row[2], rowNum, "rate")
		if err != nil {
			return nil, err
		}
		from, err := parseDate(row[4], rowNum, "effective_from")
		if err != nil {
			return nil, err
		}
		to, err := parseOptionalDate(row[5], rowNum, "effective_to")
		if err != nil {
			return nil, err
		}
		records = append(records, model.GeneralDutyRate{
			ClassificationCode: strings.TrimSpace(row[0]),
			Kind:               model.RateKind(strings.TrimSpace(row[1])),
			Rate:               rate,
			Unit:               strings.TrimSpace(row[3]),
			EffectiveFrom:      from,
			EffectiveTo:        to,
		})
	}
	return records, nil
}

// decodePreferentialRates parses rows of
// classification_code,agreement_code,origin_country,rate,staging_category,rule_of_origin,safeguard_applicable,effective_from,effective_to
func decodePreferentialRates(r io.Reader) ([]model.PreferentialRate, error) {
	rows, err := csvRows(r, 9)
	if err != nil {
		return nil, err
	}

	records := make([]model.PreferentialRate, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		rate, err := parseRate(row[3], rowNum, "rate")
		if err != nil {
			return nil, err
		}
		safeguard, err := parseBool(row[6], rowNum, "safeguard_applicable")
		if err != nil {
			return nil, err
		}
		from, err := parseDate(row[7], rowNum, "effective_from")
		if err != nil {
			return nil, err
		}
		to, err := parseOptionalDate(row[8], rowNum, "effective_to")
		if err != nil {
			return nil, err
		}
		records = append(records, model.PreferentialRate{
			ClassificationCode:  strings.TrimSpace(row[0]),
			AgreementCode:       strings.TrimSpace(row[1]),
			OriginCountry:       strings.ToUpper(strings.TrimSpace(row[2])),
			Rate:                rate,
			StagingCategory:     strings.ToUpper(strings.TrimSpace(row[4])),
			RuleOfOrigin:        row[5],
			SafeguardApplicable: safeguard,
			EffectiveFrom:       from,
			EffectiveTo:         to,
		})
	}
	return records, nil
}

// decodeAntiDumpingMeasures parses rows of
// classification_code,origin_country,kind,rate_kind,rate,case_reference,active,effective_from,effective_to
func decodeAntiDumpingMeasures(r io.Reader) ([]model.AntiDumpingMeasure, error) {
	rows, err := csvRows(r, 9)
	if err != nil {
		return nil, err
	}

	records := make([]model.AntiDumpingMeasure, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		rate, err := parseRate(row[4], rowNum, "rate")
		if err != nil {
			return nil, err
		}
		active, err := parseBool(row[6], rowNum, "active")
		if err != nil {
			return nil, err
		}
		from, err := parseDate(row[7], rowNum, "effective_from")
		if err != nil {
			return nil, err
		}
		to, err := parseOptionalDate(row[8], rowNum, "effective_to")
		if err != nil {
			return nil, err
		}
		records = append(records, model.AntiDumpingMeasure{
			ClassificationCode: strings.TrimSpace(row[0]),
			OriginCountry:      strings.ToUpper(strings.TrimSpace(row[1])),
			Kind:               model.MeasureKind(strings.TrimSpace(row[2])),
			RateKind:           model.RateKind(strings.TrimSpace(row[3])),
			Rate:               rate,
			CaseReference:      strings.TrimSpace(row[5]),
			Active:             active,
			EffectiveFrom:      from,
			EffectiveTo:        to,
		})
	}
	return records, nil
}

// decodeConcessionOrders parses rows of
// classification_code,order_number,description,current,effective_from,effective_to
func decodeConcessionOrders(r io.Reader) ([]model.ConcessionOrder, error) {
	rows, err := csvRows(r, 6)
	if err != nil {
		return nil, err
	}

	records := make([]model.ConcessionOrder, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		current, err := parseBool(row[3], rowNum, "current")
		if err != nil {
			return nil, err
		}
		from, err := parseDate(row[4], rowNum, "effective_from")
		if err != nil {
			return nil, err
		}
		to, err := parseOptionalDate(row[5], rowNum, "effective_to")
		if err != nil {
			return nil, err
		}
		records = append(records, model.ConcessionOrder{
			ClassificationCode: strings.TrimSpace(row[0]),
			OrderNumber:        strings.TrimSpace(row[1]),
			Description:        row[2],
			Current:            current,
			EffectiveFrom:      from,
			EffectiveTo:        to,
		})
	}
	return records, nil
}

// decodeGstProvisions parses rows of
// classification_code,category,exemption_type,active
func decodeGstProvisions(r io.Reader) ([]model.GstExemptionProvision, error) {
	rows, err := csvRows(r, 4)
	if err != nil {
		return nil, err
	}

	records := make([]model.GstExemptionProvision, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 2
		active, err := parseBool(row[3], rowNum, "active")
		if err != nil {
			return nil, err
		}
		records = append(records, model.GstExemptionProvision{
			ClassificationCode: strings.TrimSpace(row[0]),
			Category:           strings.TrimSpace(row[1]),
			ExemptionType:      strings.TrimSpace(row[2]),
			Active:             active,
		})
	}
	return records, nil
}

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/catalog"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	csvimport "github.com/Charan2012-gif/Shopping-App/internal/infrastructure/import"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant sheet limits
const (
	MaxVariantImportRows   = 200
	MaxVariantImportErrors = 50
)

// VariantImportResult reports a stock sheet import. Rows rejected by the sheet
// checks never reach the catalog; the rest are applied as one upsert batch.
type VariantImportResult struct {
	TotalRows       int                   `json:"total_rows"`
	RejectedRows    int                   `json:"rejected_rows"`
	Errors          []csvimport.RowError  `json:"errors,omitempty"`
	ErrorsTruncated bool                  `json:"errors_truncated,omitempty"`
	Upsert          *UpsertVariantsResult `json:"upsert"`
}

func variantSheetValidator() *csvimport.FieldValidator {
	rules := []csvimport.FieldRule{
		csvimport.Field("size").Required().Custom(func(v string) error {
			if _, err := catalog.ParseSize(v); err != nil {
				return errors.New("size must be one of XS, S, M, L, XL, XXL")
			}
			return nil
		}).Build(),
		csvimport.Field("color").Required().MaxLength(50).Build(),
		csvimport.Field("quantity").Required().Int().MinValue(decimal.Zero).Build(),
		csvimport.Field("price").Required().Decimal().MinValue(decimal.Zero).Build(),
	}
	return csvimport.NewFieldValidator(rules, MaxVariantImportErrors).UniqueBy("size", "color")
}

// ImportVariants reads a stock sheet with the columns size, color, quantity and
// price and upserts the valid rows into the product's variants.
func (s *ProductService) ImportVariants(ctx context.Context, productID uuid.UUID, r io.Reader) (*VariantImportResult, error) {
	parser, err := csvimport.NewCSVParser(r, csvimport.WithMaxRows(MaxVariantImportRows))
	if err != nil {
		return nil, sheetError(err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, sheetError(err)
	}

	validator := variantSheetValidator()
	if missing := parser.MissingHeaders(validator.RequiredColumns()); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_CSV", "Missing columns: "+strings.Join(missing, ", "))
	}
	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, sheetError(err)
	}

	req := UpsertVariantsRequest{Variants: make([]VariantInput, 0, len(rows))}
	for _, row := range rows {
		if !validator.ValidateRow(row) {
			continue
		}
		quantity, _ := strconv.Atoi(row.Get("quantity"))
		req.Variants = append(req.Variants, VariantInput{
			Size:     row.Get("size"),
			Color:    row.Get("color"),
			Quantity: quantity,
			Price:    decimal.RequireFromString(row.Get("price")),
		})
	}

	upsert, err := s.UpsertVariants(ctx, productID, req)
	if err != nil {
		return nil, err
	}

	errs := validator.Errors()
	return &VariantImportResult{
		TotalRows:       len(rows),
		RejectedRows:    len(rows) - len(req.Variants),
		Errors:          errs.Errors(),
		ErrorsTruncated: errs.IsTruncated(),
		Upsert:          upsert,
	}, nil
}

func sheetError(err error) error {
	switch {
	case errors.Is(err, csvimport.ErrEmptyFile),
		errors.Is(err, csvimport.ErrInvalidEncoding),
		errors.Is(err, csvimport.ErrMissingHeader):
		return shared.NewDomainError("INVALID_CSV", err.Error())
	case errors.Is(err, csvimport.ErrTooManyRows):
		return shared.NewDomainError("INVALID_CSV", "A sheet may hold at most "+strconv.Itoa(MaxVariantImportRows)+" rows")
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return shared.NewDomainError("INVALID_CSV", parseErr.Error())
	}
	return err
}

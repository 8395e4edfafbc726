package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pay-router.backend/internal/domain/entities"
)

const reportTimeLayout = "2006-01-02 15:04:05"

// TransactionParser converts one vendor report row into the canonical
// record. Rows arrive as header->value maps produced by ReadReport.
type TransactionParser interface {
	Parse(row map[string]string) (entities.RawTransactionRecord, error)
}

// ReadReport reads a CSV report and parses every row. The first line must
// be the header.
func ReadReport(r io.Reader, parser TransactionParser) ([]entities.RawTransactionRecord, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read report header: %w", err)
	}

	var records []entities.RawTransactionRecord
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read report row: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		record, err := parser.Parse(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// StripeCSVParser parses Stripe's balance transaction report. The report
// carries no card type or BIN, so those fields are fixed placeholders and
// downstream dimensions collapse debit and credit traffic.
type StripeCSVParser struct{}

func NewStripeCSVParser() *StripeCSVParser { return &StripeCSVParser{} }

var stripeMappedColumns = map[string]bool{
	"amount": true, "currency": true, "status": true,
	"card_brand": true, "card_country": true, "created": true,
}

func (p *StripeCSVParser) Parse(row map[string]string) (entities.RawTransactionRecord, error) {
	amount, err := decimal.NewFromString(row["amount"])
	if err != nil {
		return entities.RawTransactionRecord{}, fmt.Errorf("stripe report amount %q: %w", row["amount"], err)
	}
	timestamp, err := time.Parse(reportTimeLayout, row["created"])
	if err != nil {
		return entities.RawTransactionRecord{}, fmt.Errorf("stripe report created %q: %w", row["created"], err)
	}

	status := entities.RecordStatusFailed
	if row["status"] == "available" {
		status = entities.RecordStatusSucceeded
	}
	region := "international"
	if row["card_country"] == "US" {
		region = "domestic"
	}

	return entities.RawTransactionRecord{
		Provider:       entities.ProviderStripe,
		PaymentForm:    "card_on_file",
		ProcessingType: "signature",
		Amount:         amount,
		Currency:       strings.ToUpper(row["currency"]),
		Status:         status,
		LatencyMS:      0,
		BIN:            "000000",
		CardType:       "credit",
		Network:        strings.ToLower(row["card_brand"]),
		Region:         region,
		Timestamp:      timestamp.UTC(),
		ExtraFields:    unmappedColumns(row, stripeMappedColumns),
	}, nil
}

// AdyenCSVParser parses Adyen's payment accounting report.
type AdyenCSVParser struct{}

func NewAdyenCSVParser() *AdyenCSVParser { return &AdyenCSVParser{} }

var adyenMappedColumns = map[string]bool{
	"Gross Debit": true, "Currency": true, "Type": true,
	"Payment Method": true, "Creation Date": true, "Status": true,
	"Merchant Reference": true, "PSP Reference": true,
}

func (p *AdyenCSVParser) Parse(row map[string]string) (entities.RawTransactionRecord, error) {
	amount, err := decimal.NewFromString(row["Gross Debit"])
	if err != nil {
		return entities.RawTransactionRecord{}, fmt.Errorf("adyen report gross debit %q: %w", row["Gross Debit"], err)
	}
	timestamp, err := time.Parse(reportTimeLayout, row["Creation Date"])
	if err != nil {
		return entities.RawTransactionRecord{}, fmt.Errorf("adyen report creation date %q: %w", row["Creation Date"], err)
	}

	status := entities.RecordStatusFailed
	if row["Type"] == "Settled" {
		status = entities.RecordStatusSucceeded
	}

	return entities.RawTransactionRecord{
		Provider:       entities.ProviderAdyen,
		PaymentForm:    "card_on_file",
		ProcessingType: "signature",
		Amount:         amount,
		Currency:       strings.ToUpper(row["Currency"]),
		Status:         status,
		LatencyMS:      0,
		BIN:            "000000",
		CardType:       "credit",
		Network:        strings.ToLower(row["Payment Method"]),
		Region:         "domestic",
		Timestamp:      timestamp.UTC(),
		ExtraFields:    unmappedColumns(row, adyenMappedColumns),
	}, nil
}

func unmappedColumns(row map[string]string, mapped map[string]bool) map[string]string {
	var extra map[string]string
	for key, value := range row {
		if mapped[key] {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[key] = value
	}
	return extra
}

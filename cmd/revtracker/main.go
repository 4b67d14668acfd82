package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"revtracker/internal/config"
	"revtracker/internal/domain"
	"revtracker/internal/gateway"
	"revtracker/internal/usecase"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Load()
	config.SetLogLevel(cfg.LogLevel)

	// --- Dependency Injection (Wiring the application) ---
	// In a larger app, this might be done with a DI container.
	// Here, we do it manually, which is clear and simple.

	// 1. Create the store (the outermost layer)
	store, err := newStore(context.Background(), cfg)
	if err != nil {
		fail("main", "create record store", err)
	}

	// 2. Create the usecase and inject the store (the core logic layer)
	tracker := usecase.NewTracker(store, config.GetLogger())

	// --- Execute the selected command ---
	ctx := context.Background()
	switch os.Args[1] {
	case "dashboard":
		runDashboard(ctx, tracker, os.Args[2:])
	case "ledger":
		runLedger(ctx, tracker, os.Args[2:])
	case "sync":
		runSync(ctx, tracker)
	case "save-ledger":
		runSaveLedger(ctx, tracker, os.Args[2:])
	case "save-master":
		runSaveMaster(ctx, tracker, os.Args[2:])
	case "summary":
		runSummary(ctx, tracker, os.Args[2:])
	case "onboard":
		runOnboard(ctx, tracker, os.Args[2:])
	case "partners":
		runPartners(ctx, tracker)
	case "fy":
		printJSON(tracker.FinancialYears())
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: revtracker <command> [flags]")
	fmt.Println("Commands: dashboard, ledger, sync, save-ledger, save-master, summary, onboard, partners, fy")
}

func fail(funcName, context string, err error) {
	config.LogError(config.GetLogger(), "cmd", funcName, context, nil, err)
	os.Exit(1)
}

func newStore(ctx context.Context, cfg config.Config) (usecase.RecordStore, error) {
	var inner usecase.RecordStore
	switch cfg.StoreKind {
	case "sheets":
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("REVTRACKER_SPREADSHEET_ID is required for the sheets store")
		}
		sheetsStore, err := gateway.NewSheetsStore(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		inner = sheetsStore
	case "excel":
		inner = gateway.NewExcelStore(cfg.WorkbookPath)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.StoreKind)
	}
	return gateway.NewCachedStore(inner, cfg.CacheTTL), nil
}

func filterFlags(fs *flag.FlagSet) (fy, quarter, month *string) {
	fy = fs.String("fy", "", "Financial year label, e.g. 2024-25")
	quarter = fs.String("quarter", "", "Quarter within the financial year (Q1-Q4)")
	month = fs.String("month", "", "Single month, e.g. Apr-2024")
	return fy, quarter, month
}

func buildFilter(fy, quarter, month string) usecase.Filter {
	f := usecase.Filter{FY: fy, Quarter: quarter}
	if month != "" {
		f.Month, _ = domain.ParseMonth(month)
	}
	return f
}

func runDashboard(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	fy, quarter, month := filterFlags(fs)
	fs.Parse(args)

	report, err := tracker.Dashboard(ctx, buildFilter(*fy, *quarter, *month))
	if err != nil {
		fail("dashboard", "load dashboard", err)
	}
	printJSON(report)
}

// ledgerLine decorates a ledger row with its derived status for display.
type ledgerLine struct {
	domain.LedgerRow
	Shortage string           `json:"shortage"`
	Status   domain.RowStatus `json:"status"`
}

func runLedger(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("ledger", flag.ExitOnError)
	kindStr := fs.String("kind", "receivable", "Ledger kind: receivable or payable")
	fy, quarter, month := filterFlags(fs)
	fs.Parse(args)

	kind, err := parseKind(*kindStr)
	if err != nil {
		fail("ledger", "load ledger", err)
	}
	rows, err := tracker.LoadLedger(ctx, kind, buildFilter(*fy, *quarter, *month))
	if err != nil {
		fail("ledger", "load ledger", err)
	}

	today := time.Now()
	lines := make([]ledgerLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, ledgerLine{
			LedgerRow: row,
			Shortage:  row.Shortage().StringFixed(2),
			Status:    row.Status(today),
		})
	}
	printJSON(lines)
}

func runSync(ctx context.Context, tracker *usecase.Tracker) {
	result, err := tracker.SyncLedgers(ctx)
	if err != nil {
		fail("sync", "synchronize ledgers", err)
	}
	printJSON(result)
}

func runSaveLedger(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("save-ledger", flag.ExitOnError)
	kindStr := fs.String("kind", "receivable", "Ledger kind: receivable or payable")
	editsFile := fs.String("edits", "", "Path to a JSON file with the edit batch (required)")
	fs.Parse(args)

	kind, err := parseKind(*kindStr)
	if err != nil {
		fail("save", "save edits", err)
	}
	var edits []usecase.LedgerEdit
	if err := readJSONFile(*editsFile, &edits); err != nil {
		fail("save", "save edits", err)
	}

	result, err := tracker.SaveLedgerEdits(ctx, kind, edits)
	if err != nil {
		fail("save", "save edits", err)
	}
	printJSON(result)
}

func runSaveMaster(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("save-master", flag.ExitOnError)
	editsFile := fs.String("edits", "", "Path to a JSON file with the edit batch (required)")
	fs.Parse(args)

	var edits []usecase.MasterEdit
	if err := readJSONFile(*editsFile, &edits); err != nil {
		fail("save", "save edits", err)
	}

	result, err := tracker.SaveMasterEdits(ctx, edits)
	if err != nil {
		fail("save", "save edits", err)
	}
	printJSON(result)
}

func runSummary(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	partner := fs.String("partner", "", "Partner short name (required)")
	fy, quarter, month := filterFlags(fs)
	fs.Parse(args)

	if *partner == "" {
		fmt.Println("Error: -partner is required.")
		fs.Usage()
		os.Exit(1)
	}

	summary, err := tracker.PartnerSummary(ctx, *partner, buildFilter(*fy, *quarter, *month))
	if err != nil {
		fail("summary", "build partner summary", err)
	}
	printJSON(summary)
}

func runOnboard(ctx context.Context, tracker *usecase.Tracker, args []string) {
	fs := flag.NewFlagSet("onboard", flag.ExitOnError)
	agreementDate := fs.String("agreement-date", "", "Agreement start date (YYYY-MM-DD) (required)")
	legalName := fs.String("legal-name", "", "Legal entity name (required)")
	shortName := fs.String("short-name", "", "Short name used in master data (required)")
	address := fs.String("address", "", "Registered address")
	country := fs.String("country", "", "Country, e.g. \"India (IN)\" (required)")
	gstin := fs.String("gstin", "", "GSTIN, Indian entities only")
	terms := fs.String("terms", "Net 30", "Payment terms: Net 30/45/60/90")
	contactName := fs.String("contact", "", "Contact person")
	contactEmail := fs.String("email", "", "Contact email")
	financeEmail := fs.String("finance-email", "", "Finance email")
	fs.Parse(args)

	parsedDate, err := time.Parse("2006-01-02", *agreementDate)
	if err != nil {
		fail("onboard", "parse agreement date", err)
	}

	partner, err := tracker.OnboardPartner(ctx, usecase.NewPartner{
		AgreementDate: parsedDate,
		LegalName:     *legalName,
		ShortName:     *shortName,
		Address:       *address,
		Country:       *country,
		GSTIN:         *gstin,
		PaymentTerms:  *terms,
		ContactName:   *contactName,
		ContactEmail:  *contactEmail,
		FinanceEmail:  *financeEmail,
	})
	if err != nil {
		fail("onboard", "onboard partner", err)
	}
	printJSON(partner)
}

func runPartners(ctx context.Context, tracker *usecase.Tracker) {
	partners, err := tracker.ListPartners(ctx)
	if err != nil {
		fail("partners", "list partners", err)
	}
	printJSON(partners)
}

func parseKind(s string) (domain.LedgerKind, error) {
	switch s {
	case "receivable":
		return domain.LedgerReceivable, nil
	case "payable":
		return domain.LedgerPayable, nil
	}
	return "", fmt.Errorf("unknown ledger kind %q", s)
}

func readJSONFile(path string, v interface{}) error {
	if path == "" {
		return fmt.Errorf("-edits is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// --- Present the Output ---
func printJSON(v interface{}) {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("printJSON", "encode output", err)
	}
	fmt.Println(string(output))
}

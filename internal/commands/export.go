package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/utils/concar"
)

type concarExportOptions struct {
	companyID        string
	documentType     string
	year             int
	month            int
	startDay         int
	endDay           int
	bankAccountIDs   []string
	conciliationType string
	out              string
}

// filter converts the flags to an export filter; zero values mean "not set".
func (o concarExportOptions) filter() domain.ConcarExportFilter {
	f := domain.ConcarExportFilter{
		CompanyID:        o.companyID,
		DocumentTypeCode: o.documentType,
		BankAccountIDs:   o.bankAccountIDs,
	}
	f.Year = optionalInt(o.year)
	f.Month = optionalInt(o.month)
	f.StartDay = optionalInt(o.startDay)
	f.EndDay = optionalInt(o.endDay)
	if o.conciliationType != "" {
		t := domain.ConciliationType(o.conciliationType)
		f.ConciliationType = &t
	}
	return f
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func newConcarExportCommand() *cobra.Command {
	var opts concarExportOptions

	cmd := &cobra.Command{
		Use:   "concar-export",
		Short: "Write the CONCAR import CSV for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			export, err := a.services.AccountingEntry.ExportConcar(ctx, opts.filter())
			if err != nil {
				return fmt.Errorf("building export: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.out != "" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", opts.out, err)
				}
				defer f.Close()
				w = f
			}
			if err := concar.WriteCSV(w, export.Data); err != nil {
				return fmt.Errorf("writing CSV: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "period %s: %d records from %d entries\n",
				export.Summary.Period, export.Summary.TotalRecords, export.Summary.TotalEntries)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.companyID, "company", "", "company ID (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&opts.documentType, "document-type", domain.SubDiarioInvoice, "sub-diary: 15 (receipts for fees) or 11 (invoices)")
	cmd.Flags().IntVar(&opts.year, "year", 0, "year")
	cmd.Flags().IntVar(&opts.month, "month", 0, "month (requires --year)")
	cmd.Flags().IntVar(&opts.startDay, "start-day", 0, "first day (requires --month)")
	cmd.Flags().IntVar(&opts.endDay, "end-day", 0, "last day (requires --month)")
	cmd.Flags().StringSliceVar(&opts.bankAccountIDs, "bank-account", nil, "restrict to bank accounts (repeatable)")
	cmd.Flags().StringVar(&opts.conciliationType, "conciliation-type", "", "DOCUMENTS or DETRACTIONS")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")

	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/service"
	"github.com/mmynk/billsplitter/internal/storage/toml"
	v1 "github.com/mmynk/billsplitter/pkg/api/v1"
	"github.com/mmynk/billsplitter/pkg/api/v1/apiconnect"
)

// settleReport is what settle prints.
type settleReport struct {
	Group    string       `json:"group,omitempty"`
	Balances []v1.Balance `json:"balances"`
	Payments []v1.Payment `json:"payments"`
	Settled  bool         `json:"settled"`
}

func newSettleCmd(a *app) *cobra.Command {
	var (
		server string
		token  string
	)

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Compute balances and settlement payments for a group file",
		Long: "settle reads a TOML group file and prints each participant's balance " +
			"and the payments that settle the group. With --server the work is done " +
			"by a running billsplitter server instead of in-process.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			group, err := toml.NewReader().ReadGroup(ctx, args[0])
			if err != nil {
				return err
			}

			var client apiconnect.LedgerServiceClient
			if server != "" {
				client = apiconnect.NewLedgerServiceClient(
					&http.Client{Timeout: 30 * time.Second},
					server,
					connect.WithInterceptors(middleware.BearerToken(token)),
				)
			} else {
				client = service.NewLedgerService(service.WithTolerance(a.cfg.Tolerance))
			}

			slog.Debug("Settling group",
				"group", group.Name,
				"participants", len(group.Participants),
				"expenses", len(group.Expenses),
				"remote", server != "",
			)

			resp, err := client.SettleGroup(ctx, connect.NewRequest(settleRequest(group)))
			if err != nil {
				return fmt.Errorf("settle %s: %w", args[0], err)
			}

			report := settleReport{
				Group:    group.Name,
				Balances: resp.Msg.Balances,
				Payments: resp.Msg.Payments,
				Settled:  verifySettled(resp.Msg, a.cfg.Tolerance),
			}
			if !report.Settled {
				slog.Warn("Payments do not settle every balance", "group", group.Name)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "base URL of a billsplitter server, e.g. http://localhost:8080")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for --server")

	return cmd
}

func settleRequest(group *models.Group) *v1.SettleGroupRequest {
	req := &v1.SettleGroupRequest{
		Participants: make([]string, len(group.Participants)),
		Expenses:     make([]v1.Expense, len(group.Expenses)),
		Payments:     make([]v1.Payment, len(group.Payments)),
	}
	for i, p := range group.Participants {
		req.Participants[i] = p.String()
	}
	for i, e := range group.Expenses {
		sharers := make([]string, len(e.Sharers))
		for k, s := range e.Sharers {
			sharers[k] = s.String()
		}
		req.Expenses[i] = v1.Expense{
			Description: e.Description,
			Amount:      e.Amount,
			Payer:       e.Payer.String(),
			Sharers:     sharers,
		}
	}
	for i, p := range group.Payments {
		req.Payments[i] = v1.Payment{
			Debtor:   p.Debtor.String(),
			Creditor: p.Creditor.String(),
			Amount:   p.Amount,
		}
	}
	return req
}

// verifySettled applies the suggested payments to the returned balances.
func verifySettled(resp *v1.SettleGroupResponse, tol decimal.Decimal) bool {
	balances := make(models.Balances, len(resp.Balances))
	for i, b := range resp.Balances {
		balances[i] = models.Balance{Participant: models.Participant(b.Participant), Amount: b.Amount}
	}
	payments := make([]models.Payment, len(resp.Payments))
	for i, p := range resp.Payments {
		payments[i] = models.Payment{
			Debtor:   models.Participant(p.Debtor),
			Creditor: models.Participant(p.Creditor),
			Amount:   p.Amount,
		}
	}
	return calculator.IsSettled(calculator.ApplyPayments(balances, payments), tol)
}

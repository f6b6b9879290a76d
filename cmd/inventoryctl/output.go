package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stockledger/inventory-client/internal/core/domain"
	"github.com/stockledger/inventory-client/internal/core/ports"
)

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printKV(rows [][2]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	_ = w.Flush()
}

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func printState(s ports.SessionState) {
	caps := make([]string, 0, len(s.Permitted))
	for _, c := range s.Permitted {
		caps = append(caps, string(c))
	}
	offered := strings.Join(caps, ", ")
	if offered == "" {
		offered = "-"
	}
	printKV([][2]string{
		{"account", s.Account.String()},
		{"role", string(s.Role)},
		{"paused", strconv.FormatBool(s.Paused)},
		{"offered", offered},
	})
}

func printItems(items []domain.InventoryItem) {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		low := ""
		if it.LowStock() {
			low = "LOW"
		}
		rows = append(rows, []string{
			strconv.FormatUint(it.ID, 10),
			it.Name,
			strconv.FormatUint(it.Stock, 10),
			strconv.FormatUint(it.Price, 10),
			strconv.FormatUint(it.Threshold, 10),
			low,
		})
	}
	printTable([]string{"ID", "NAME", "STOCK", "PRICE", "THRESHOLD", ""}, rows)
}

func printEvents(events []domain.DomainEvent) {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			ev.ReceivedAt.Local().Format(time.TimeOnly),
			string(ev.Kind),
			ev.Message(),
		})
	}
	printTable([]string{"RECEIVED", "KIND", "MESSAGE"}, rows)
}

func printResult(r *ports.DispatchResult) {
	rows := [][2]string{
		{"op", string(r.Op)},
		{"status", "confirmed"},
	}
	if r.Value > 0 {
		rows = append(rows, [2]string{"value", strconv.FormatUint(r.Value, 10)})
	}
	if r.Receipt != nil {
		rows = append(rows,
			[2]string{"tx", r.Receipt.TxHash},
			[2]string{"block", strconv.FormatUint(r.Receipt.Block, 10)},
		)
	}
	if r.RefreshErr != nil {
		rows = append(rows, [2]string{"warning", "inventory not refreshed: " + r.RefreshErr.Error()})
	}
	printKV(rows)
}

package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/example/shipment-label-service/internal/dhl"
	"github.com/example/shipment-label-service/internal/domain"
)

// Читает JSON отправления со stdin и печатает тело запроса перевозчика.
// Сухой прогон маппера без сетевого вызова.
func main() {
	accounts := dhl.AccountConfig{
		ExportAccount: getenv("DHL_ACCOUNT_EXP", "000000000"),
		ImportAccount: getenv("DHL_ACCOUNT_IMP", ""),
	}

	var s domain.Shipment
	dec := json.NewDecoder(os.Stdin)
	if err := dec.Decode(&s); err != nil {
		log.Fatalf("read shipment json from stdin: %v", err)
	}

	req := dhl.MapCreateShipmentRequest(&s, accounts, time.Now())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		log.Fatalf("encode request: %v", err)
	}
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

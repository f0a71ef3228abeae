package configs

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// LedgerConfig berisi pengaturan keuangan yang dibaca sekali saat boot.
// Nilainya diteruskan eksplisit ke handler/service, tidak dibaca ulang dari global.
type LedgerConfig struct {
	OverpaymentPolicy       string
	BillingDueDays          int
	ActiveAcademicYearID    *uuid.UUID
	RecentTransactionsLimit int

	MidtransServerKey string
	MidtransUseProd   bool

	AutoMigrate bool
	RunSeeds    bool
}

func LoadLedgerConfig() LedgerConfig {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("OVERPAYMENT_POLICY", "accept")
	v.SetDefault("BILLING_DUE_DAYS", 14)
	v.SetDefault("RECENT_TRANSACTIONS_LIMIT", 10)
	v.SetDefault("MIDTRANS_USE_PROD", false)
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("RUN_SEEDS", false)

	cfg := LedgerConfig{
		OverpaymentPolicy:       strings.ToLower(strings.TrimSpace(v.GetString("OVERPAYMENT_POLICY"))),
		BillingDueDays:          v.GetInt("BILLING_DUE_DAYS"),
		RecentTransactionsLimit: v.GetInt("RECENT_TRANSACTIONS_LIMIT"),
		MidtransServerKey:       v.GetString("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:         v.GetBool("MIDTRANS_USE_PROD"),
		AutoMigrate:             v.GetBool("AUTO_MIGRATE"),
		RunSeeds:                v.GetBool("RUN_SEEDS"),
	}
	if cfg.BillingDueDays <= 0 {
		cfg.BillingDueDays = 14
	}
	if cfg.RecentTransactionsLimit <= 0 {
		cfg.RecentTransactionsLimit = 10
	}

	if raw := strings.TrimSpace(v.GetString("ACTIVE_ACADEMIC_YEAR_ID")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Printf("[WARN] ACTIVE_ACADEMIC_YEAR_ID tidak valid (%q), diabaikan", raw)
		} else {
			cfg.ActiveAcademicYearID = &id
		}
	}

	log.Printf("[INFO] Ledger config: overpayment=%s due_days=%d", cfg.OverpaymentPolicy, cfg.BillingDueDays)
	return cfg
}

package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
	"github.com/oltecnologia/analyst-management/internal/user"
	userPostgres "github.com/oltecnologia/analyst-management/internal/user/postgres"
	"github.com/oltecnologia/analyst-management/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store with sample data",
	Long:  `Seed the store with accounts and sample analysts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, model := range []interface{}{
				&salaryDatamodel.SalaryHistory{},
				&vacationDatamodel.VacationPeriod{},
				&analystDatamodel.Analyst{},
				&userDatamodel.User{},
			} {
				if err := db.Where("1 = 1").Delete(model).Error; err != nil {
					log.Fatalf("failed to clear data: %v", err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		userService := user.NewService(userPostgres.NewUserRepository(db), cfg.Security.BCryptCost, logger.LoggerWrapper())

		if err := userService.EnsureAdmin(seedAdminUsername, seedAdminPassword, seedAdminName, seedAdminEmail); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		fmt.Println("Seeded admin user:", seedAdminUsername)

		accounts := []user.CreateUserDTO{
			{Username: "mariana", Password: "mariana123", Role: "manager", Name: "Mariana Lopes", Email: "mariana@oltecnologia.com"},
			{Username: "carlos", Password: "carlos123", Role: "analyst", Name: "Carlos Pereira", Email: "carlos@oltecnologia.com"},
		}
		for _, dto := range accounts {
			if _, err := userService.Create(dto); err != nil {
				fmt.Printf("account %s already present or rejected: %v\n", dto.Username, err)
				continue
			}
			fmt.Println("Seeded account:", dto.Username)
		}

		now := time.Now()
		samples := []analystDatamodel.Analyst{
			{Name: "Ana Souza", Position: "Analista Pleno", StartDate: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), IsActive: true, CreatedAt: now, UpdatedAt: now},
			{Name: "Bruno Lima", Position: "Analista Junior", StartDate: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), IsActive: true, DayOffEnabled: true, CreatedAt: now, UpdatedAt: now},
		}
		for i := range samples {
			if err := db.Create(&samples[i]).Error; err != nil {
				log.Fatalf("failed to seed analyst %s: %v", samples[i].Name, err)
			}
			fmt.Println("Seeded analyst:", samples[i].Name)
		}
	},
}

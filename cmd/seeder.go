package cmd

import (
	"fmt"
	"log"
	"time"

	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	employeeDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/employee"
	"github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/hranalytic"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"hr_analytics", "assets", "employees"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedEmployees(gormDB)
		seedAssets(gormDB)
		seedAnalytics(gormDB)

		fmt.Println("Seeding complete")
	},
}

func seedEmployees(db *gorm.DB) {
	managerID := int64(1)
	employees := []employeeDatamodel.Employee{
		{
			FullName:         "Sari Wulandari",
			Email:            "sari@mail.com",
			Department:       employeeDatamodel.DepartmentIT,
			Role:             employeeDatamodel.RoleManager,
			HireDate:         time.Now().AddDate(-6, 0, 0),
			TenureMonths:     72,
			EmploymentStatus: employeeDatamodel.StatusActive,
			Location:         "Jakarta",
			WorkMode:         "hybrid",
		},
		{
			FullName:         "Budi Santoso",
			Email:            "budi@mail.com",
			Department:       employeeDatamodel.DepartmentIT,
			Role:             employeeDatamodel.RoleStaff,
			ManagerID:        &managerID,
			HireDate:         time.Now().AddDate(-2, -3, 0),
			TenureMonths:     27,
			EmploymentStatus: employeeDatamodel.StatusActive,
			Location:         "Jakarta",
			WorkMode:         "office",
		},
		{
			FullName:         "Dewi Lestari",
			Email:            "dewi@mail.com",
			Department:       employeeDatamodel.DepartmentMarketing,
			Role:             employeeDatamodel.RoleStaff,
			ManagerID:        &managerID,
			HireDate:         time.Now().AddDate(-1, 0, 0),
			TenureMonths:     12,
			EmploymentStatus: employeeDatamodel.StatusActive,
			Location:         "Bandung",
			WorkMode:         "remote",
		},
	}

	for i := range employees {
		emp := &employees[i]
		emp.CreatedAt = time.Now()
		emp.UpdatedAt = time.Now()

		var exists int64
		db.Model(&employeeDatamodel.Employee{}).Where("email = ?", emp.Email).Count(&exists)
		if exists > 0 {
			fmt.Println("employee already exists:", emp.Email)
			continue
		}
		if err := db.Create(emp).Error; err != nil {
			log.Fatalf("failed to seed employee %s: %v", emp.Email, err)
		}
		fmt.Println("Seeded employee:", emp.Email)
	}
}

func seedAssets(db *gorm.DB) {
	assets := []assetDatamodel.Asset{
		{
			AssetTag:      "LT-0001",
			SerialNumber:  "SN-LT-0001",
			DeviceType:    assetDatamodel.DeviceLaptop,
			Brand:         "Lenovo",
			Model:         "ThinkPad T14",
			PurchaseDate:  time.Now().AddDate(0, -8, 0),
			PurchaseValue: decimal.NewFromInt(1400),
			CurrentValue:  decimal.NewFromInt(1150),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionExcellent,
			Location:      "Jakarta",
		},
		{
			AssetTag:      "LT-0002",
			SerialNumber:  "SN-LT-0002",
			DeviceType:    assetDatamodel.DeviceLaptop,
			Brand:         "Dell",
			Model:         "Latitude 5420",
			PurchaseDate:  time.Now().AddDate(-4, 0, 0),
			PurchaseValue: decimal.NewFromInt(1200),
			CurrentValue:  decimal.NewFromInt(350),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionGood,
			Location:      "Jakarta",
		},
		{
			AssetTag:      "LT-0003",
			SerialNumber:  "SN-LT-0003",
			DeviceType:    assetDatamodel.DeviceLaptop,
			Brand:         "Apple",
			Model:         "MacBook Pro 2019",
			PurchaseDate:  time.Now().AddDate(-6, 0, 0),
			PurchaseValue: decimal.NewFromInt(2400),
			CurrentValue:  decimal.NewFromInt(400),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionFair,
			Location:      "Bandung",
		},
		{
			AssetTag:      "MN-0001",
			SerialNumber:  "SN-MN-0001",
			DeviceType:    assetDatamodel.DeviceMonitor,
			Brand:         "LG",
			Model:         "27UL500",
			PurchaseDate:  time.Now().AddDate(-1, -6, 0),
			PurchaseValue: decimal.NewFromInt(350),
			CurrentValue:  decimal.NewFromInt(250),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionExcellent,
			Location:      "Jakarta",
		},
		{
			AssetTag:      "MN-0002",
			SerialNumber:  "SN-MN-0002",
			DeviceType:    assetDatamodel.DeviceMonitor,
			Brand:         "Dell",
			Model:         "U2720Q",
			PurchaseDate:  time.Now().AddDate(-3, -2, 0),
			PurchaseValue: decimal.NewFromInt(500),
			CurrentValue:  decimal.NewFromInt(180),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionGood,
			Location:      "Jakarta",
		},
		{
			AssetTag:      "PH-0001",
			SerialNumber:  "SN-PH-0001",
			DeviceType:    assetDatamodel.DevicePhone,
			Brand:         "Samsung",
			Model:         "Galaxy S22",
			PurchaseDate:  time.Now().AddDate(-1, 0, 0),
			PurchaseValue: decimal.NewFromInt(800),
			CurrentValue:  decimal.NewFromInt(550),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     assetDatamodel.ConditionExcellent,
			Location:      "Jakarta",
		},
	}

	for i := range assets {
		a := &assets[i]
		a.CreatedAt = time.Now()
		a.UpdatedAt = time.Now()

		var exists int64
		db.Model(&assetDatamodel.Asset{}).Where("asset_tag = ?", a.AssetTag).Count(&exists)
		if exists > 0 {
			fmt.Println("asset already exists:", a.AssetTag)
			continue
		}
		if err := db.Create(a).Error; err != nil {
			log.Fatalf("failed to seed asset %s: %v", a.AssetTag, err)
		}
		fmt.Println("Seeded asset:", a.AssetTag)
	}
}

func seedAnalytics(db *gorm.DB) {
	var employees []*employeeDatamodel.Employee
	if err := db.Find(&employees).Error; err != nil {
		log.Fatalf("failed to load employees for analytics seeding: %v", err)
	}

	for _, emp := range employees {
		var exists int64
		db.Model(&hranalytic.HRAnalytic{}).Where("employee_id = ?", emp.ID).Count(&exists)
		if exists > 0 {
			continue
		}

		// One snapshot per month for the past year.
		for m := 0; m < 12; m++ {
			perf := 3.5
			engagement := 3.8 - float64(m)*0.02
			salaryChange := 4.0
			sickDays := 3
			leaves := 1
			training := 35
			overtime := 8
			remote := 40.0
			projects := 2
			promotionGap := 10 + m

			record := hranalytic.HRAnalytic{
				EmployeeID:               emp.ID,
				RecordDate:               time.Now().AddDate(0, -m, 0),
				PerformanceRating:        &perf,
				MonthsSinceLastPromotion: &promotionGap,
				SalaryChangePercent:      &salaryChange,
				SickDaysYTD:              &sickDays,
				UnplannedLeaves:          &leaves,
				EngagementScore:          &engagement,
				TrainingHours:            &training,
				OvertimeHours:            &overtime,
				RemoteWorkPercent:        &remote,
				ProjectCount:             &projects,
				TenureMonths:             &emp.TenureMonths,
			}
			if err := db.Create(&record).Error; err != nil {
				log.Fatalf("failed to seed analytics for employee %d: %v", emp.ID, err)
			}
		}
		fmt.Println("Seeded HR analytics for employee:", emp.Email)
	}
}

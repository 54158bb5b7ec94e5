package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frahmantamala/asset-lifecycle/internal"
	"github.com/frahmantamala/asset-lifecycle/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-lifecycle/internal/asset/postgres"
	assetDatamodel "github.com/frahmantamala/asset-lifecycle/internal/core/datamodel/asset"
	"github.com/shopspring/decimal"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

// SQLiteAsset is a SQLite-compatible model for testing
type SQLiteAsset struct {
	ID             int64      `gorm:"column:asset_id;primaryKey"`
	AssetTag       string     `gorm:"column:asset_tag;uniqueIndex;not null"`
	SerialNumber   string     `gorm:"column:serial_number;uniqueIndex;not null"`
	DeviceType     string     `gorm:"column:device_type;not null"`
	Brand          string     `gorm:"column:brand"`
	Model          string     `gorm:"column:model"`
	PurchaseDate   time.Time  `gorm:"column:purchase_date"`
	PurchaseValue  float64    `gorm:"column:purchase_value"`
	CurrentValue   float64    `gorm:"column:current_value"`
	AssignedTo     *int64     `gorm:"column:assigned_to"`
	AssignmentDate *time.Time `gorm:"column:assignment_date"`
	Status         string     `gorm:"column:status;default:available"`
	ReturnDate     *time.Time `gorm:"column:return_date"`
	ReturnDueDate  *time.Time `gorm:"column:return_due_date"`
	Condition      string     `gorm:"column:condition"`
	ConditionNotes string     `gorm:"column:condition_notes"`
	Location       string     `gorm:"column:location"`
	WarrantyExpiry *time.Time `gorm:"column:warranty_expiry"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

var _ = Describe("Asset PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo asset.Repository
	)

	newAsset := func(tag string, deviceType assetDatamodel.DeviceType, condition assetDatamodel.Condition) *assetDatamodel.Asset {
		return &assetDatamodel.Asset{
			AssetTag:      tag,
			SerialNumber:  "SN-" + tag,
			DeviceType:    deviceType,
			Brand:         "Lenovo",
			Model:         "ThinkPad",
			PurchaseDate:  time.Now().AddDate(-1, 0, 0),
			PurchaseValue: decimal.NewFromInt(1000),
			CurrentValue:  decimal.NewFromInt(700),
			Status:        assetDatamodel.StatusAvailable,
			Condition:     condition,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAsset{})
		Expect(err).NotTo(HaveOccurred())

		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create and lookup", func() {
		It("creates an asset and finds it by tag", func() {
			a := newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))

			found, err := repo.GetByTag("LT-0001")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.SerialNumber).To(Equal("SN-LT-0001"))
		})

		It("rejects a duplicate asset tag", func() {
			err := repo.Create(newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood))
			Expect(err).NotTo(HaveOccurred())

			dup := newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			dup.SerialNumber = "SN-other"
			err = repo.Create(dup)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("FindAvailable", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionFair))).To(Succeed())
			Expect(repo.Create(newAsset("LT-0002", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionExcellent))).To(Succeed())
			Expect(repo.Create(newAsset("LT-0003", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood))).To(Succeed())
			Expect(repo.Create(newAsset("LT-0004", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionPoor))).To(Succeed())
			Expect(repo.Create(newAsset("LT-0005", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionDamaged))).To(Succeed())
			Expect(repo.Create(newAsset("MN-0001", assetDatamodel.DeviceMonitor, assetDatamodel.ConditionExcellent))).To(Succeed())
		})

		It("ranks best condition first", func() {
			found, err := repo.FindAvailable(assetDatamodel.DeviceLaptop, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(3))
			Expect(found[0].AssetTag).To(Equal("LT-0002"))
			Expect(found[1].AssetTag).To(Equal("LT-0003"))
			Expect(found[2].AssetTag).To(Equal("LT-0001"))
		})

		It("never offers poor or damaged stock", func() {
			found, err := repo.FindAvailable(assetDatamodel.DeviceLaptop, 10)
			Expect(err).NotTo(HaveOccurred())
			for _, a := range found {
				Expect(a.Condition.Assignable()).To(BeTrue())
			}
		})

		It("breaks condition ties on asset ID ascending", func() {
			Expect(repo.Create(newAsset("LT-0006", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionExcellent))).To(Succeed())

			found, err := repo.FindAvailable(assetDatamodel.DeviceLaptop, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(found[0].AssetTag).To(Equal("LT-0002"))
			Expect(found[1].AssetTag).To(Equal("LT-0006"))
		})

		It("respects the limit", func() {
			found, err := repo.FindAvailable(assetDatamodel.DeviceLaptop, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
		})

		It("excludes assigned assets", func() {
			a, err := repo.GetByTag("LT-0002")
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.Claim(a.ID, 1, time.Now())).To(Succeed())

			found, err := repo.FindAvailable(assetDatamodel.DeviceLaptop, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(2))
		})
	})

	Describe("Claim", func() {
		var target *assetDatamodel.Asset

		BeforeEach(func() {
			target = newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			Expect(repo.Create(target)).To(Succeed())
		})

		It("assigns an available asset", func() {
			err := repo.Claim(target.ID, 7, time.Now())
			Expect(err).NotTo(HaveOccurred())

			claimed, err := repo.GetByID(target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(claimed.Status).To(Equal(assetDatamodel.StatusAssigned))
			Expect(*claimed.AssignedTo).To(Equal(int64(7)))
			Expect(claimed.AssignmentDate).NotTo(BeNil())
		})

		It("rejects a second claim on the same asset", func() {
			Expect(repo.Claim(target.ID, 7, time.Now())).To(Succeed())

			err := repo.Claim(target.ID, 8, time.Now())
			Expect(err).To(Equal(internal.ErrAssetUnavailable))

			claimed, err := repo.GetByID(target.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*claimed.AssignedTo).To(Equal(int64(7)))
		})

		It("rejects a claim on an unknown asset", func() {
			err := repo.Claim(999, 7, time.Now())
			Expect(err).To(Equal(internal.ErrAssetUnavailable))
		})
	})

	Describe("ScheduleReturns", func() {
		BeforeEach(func() {
			for _, tag := range []string{"LT-0001", "MN-0001"} {
				a := newAsset(tag, assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
				Expect(repo.Create(a)).To(Succeed())
				Expect(repo.Claim(a.ID, 7, time.Now())).To(Succeed())
			}
		})

		It("stamps the due date without releasing the assets", func() {
			due := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

			affected, err := repo.ScheduleReturns(7, due)
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(2)))

			held, err := repo.GetByEmployee(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(held).To(HaveLen(2))
			for _, a := range held {
				Expect(a.Status).To(Equal(assetDatamodel.StatusAssigned))
				Expect(a.ReturnDueDate).NotTo(BeNil())
			}
		})

		It("touches nothing for an employee with no assets", func() {
			affected, err := repo.ScheduleReturns(99, time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())
		})
	})

	Describe("ReleaseByEmployee", func() {
		It("returns held assets to the pool", func() {
			a := newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			Expect(repo.Create(a)).To(Succeed())
			Expect(repo.Claim(a.ID, 7, time.Now())).To(Succeed())
			_, err := repo.ScheduleReturns(7, time.Now())
			Expect(err).NotTo(HaveOccurred())

			released, err := repo.ReleaseByEmployee(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(released).To(Equal(int64(1)))

			freed, err := repo.GetByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(freed.Status).To(Equal(assetDatamodel.StatusAvailable))
			Expect(freed.AssignedTo).To(BeNil())
			Expect(freed.AssignmentDate).To(BeNil())
			Expect(freed.ReturnDueDate).To(BeNil())
		})
	})

	Describe("GetByStatus", func() {
		It("filters on status", func() {
			a := newAsset("LT-0001", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			b := newAsset("LT-0002", assetDatamodel.DeviceLaptop, assetDatamodel.ConditionGood)
			Expect(repo.Create(a)).To(Succeed())
			Expect(repo.Create(b)).To(Succeed())
			Expect(repo.Claim(a.ID, 7, time.Now())).To(Succeed())

			available, err := repo.GetByStatus(assetDatamodel.StatusAvailable)
			Expect(err).NotTo(HaveOccurred())
			Expect(available).To(HaveLen(1))
			Expect(available[0].AssetTag).To(Equal("LT-0002"))
		})
	})
})

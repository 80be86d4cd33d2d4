package salary_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oltecnologia/analyst-management/internal"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	"github.com/oltecnologia/analyst-management/internal/salary"
)

func TestSalaryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Salary Service Suite")
}

// MockRepository implements salary.Repository for testing. CreateAdjustment
// mirrors the real repository by also moving the analyst's current salary.
type MockRepository struct {
	entries  []*salaryDatamodel.SalaryHistory
	analysts map[int64]*analystDatamodel.Analyst
	nextID   int64
}

func NewMockRepository(analysts map[int64]*analystDatamodel.Analyst) *MockRepository {
	return &MockRepository{analysts: analysts, nextID: 1}
}

func (m *MockRepository) ListByAnalyst(analystID int64) ([]*salaryDatamodel.SalaryHistory, error) {
	var result []*salaryDatamodel.SalaryHistory
	for _, e := range m.entries {
		if e.AnalystID == analystID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockRepository) CreateAdjustment(entry *salaryDatamodel.SalaryHistory) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, entry)

	if parent, ok := m.analysts[entry.AnalystID]; ok {
		parent.CurrentSalary = &entry.NewAmount
		parent.LastSalaryAdjustment = &entry.AdjustmentDate
	}
	return nil
}

// MockAnalystGetter implements salary.AnalystGetter for testing
type MockAnalystGetter struct {
	analysts map[int64]*analystDatamodel.Analyst
}

func NewMockAnalystGetter() *MockAnalystGetter {
	return &MockAnalystGetter{analysts: make(map[int64]*analystDatamodel.Analyst)}
}

func (m *MockAnalystGetter) GetByID(id int64) (*analystDatamodel.Analyst, error) {
	return m.analysts[id], nil
}

func (m *MockAnalystGetter) AddAnalyst(id int64, currentSalary *string) *analystDatamodel.Analyst {
	record := &analystDatamodel.Analyst{
		ID:            id,
		Name:          "Ana Souza",
		Position:      "Analista",
		StartDate:     time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
		CurrentSalary: currentSalary,
	}
	m.analysts[id] = record
	return record
}

var _ = Describe("Salary Service", func() {
	var (
		mockRepo     *MockRepository
		mockAnalysts *MockAnalystGetter
		service      *salary.Service
		logger       *slog.Logger
	)

	BeforeEach(func() {
		mockAnalysts = NewMockAnalystGetter()
		mockRepo = NewMockRepository(mockAnalysts.analysts)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = salary.NewService(mockRepo, mockAnalysts, logger)
	})

	Describe("CreateAdjustment", func() {
		Context("for an analyst with a known salary", func() {
			var parent *analystDatamodel.Analyst

			BeforeEach(func() {
				current := "3000.00"
				parent = mockAnalysts.AddAnalyst(1, &current)
			})

			It("should snapshot the current salary when previousAmount is omitted", func() {
				entry, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(entry.PreviousAmount).NotTo(BeNil())
				Expect(*entry.PreviousAmount).To(Equal("3000.00"))
			})

			It("should keep an explicit previousAmount, normalized", func() {
				previous := "2800.5"
				entry, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					PreviousAmount: &previous,
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(*entry.PreviousAmount).To(Equal("2800.50"))
			})

			It("should normalize the new amount to two decimal places", func() {
				entry, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.5",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(entry.NewAmount).To(Equal("3500.50"))
			})

			It("should move the analyst's salary to the new amount", func() {
				_, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(*parent.CurrentSalary).To(Equal("3500.00"))
				Expect(parent.LastSalaryAdjustment).NotTo(BeNil())
				Expect(*parent.LastSalaryAdjustment).To(Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
			})

			It("should reject an unparseable amount", func() {
				_, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "abc",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})

			It("should reject a malformed adjustment date", func() {
				_, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "01/06/2025",
				})
				Expect(err).To(HaveOccurred())
			})
		})

		Context("for an analyst with no salary on record", func() {
			BeforeEach(func() {
				mockAnalysts.AddAnalyst(1, nil)
			})

			It("should leave previousAmount empty when omitted", func() {
				entry, err := service.CreateAdjustment(1, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(entry.PreviousAmount).To(BeNil())
			})
		})

		Context("for a missing analyst", func() {
			It("should return analyst not found", func() {
				_, err := service.CreateAdjustment(9999, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				Expect(err).To(Equal(internal.ErrAnalystNotFound))
			})

			It("should not record anything", func() {
				_, _ = service.CreateAdjustment(9999, salary.CreateSalaryHistoryDTO{
					NewAmount:      "3500.00",
					AdjustmentDate: "2025-06-01",
				})
				entries, err := service.ListByAnalyst(9999)
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(BeEmpty())
			})
		})
	})

	Describe("ListByAnalyst", func() {
		It("should return an empty list for an analyst with no history", func() {
			mockAnalysts.AddAnalyst(1, nil)
			entries, err := service.ListByAnalyst(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})
})

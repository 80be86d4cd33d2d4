package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/oltecnologia/analyst-management/internal/analyst"
	analystPostgres "github.com/oltecnologia/analyst-management/internal/analyst/postgres"
	"github.com/oltecnologia/analyst-management/internal/auth"
	authPostgres "github.com/oltecnologia/analyst-management/internal/auth/postgres"
	analystDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/analyst"
	salaryDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/salary"
	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
	vacationDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/vacation"
	"github.com/oltecnologia/analyst-management/internal/salary"
	salaryPostgres "github.com/oltecnologia/analyst-management/internal/salary/postgres"
	"github.com/oltecnologia/analyst-management/internal/transport/rest"
	"github.com/oltecnologia/analyst-management/internal/user"
	userPostgres "github.com/oltecnologia/analyst-management/internal/user/postgres"
	"github.com/oltecnologia/analyst-management/internal/vacation"
	vacationPostgres "github.com/oltecnologia/analyst-management/internal/vacation/postgres"
)

func TestRestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

// testServer boots the whole API against an in-memory sqlite store, the same
// wiring the server command uses.
type testServer struct {
	server   *httptest.Server
	db       *gorm.DB
	sessions *auth.Registry
}

func newTestServer() *testServer {
	db, err := gorm.Open(gormSqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	Expect(err).NotTo(HaveOccurred())

	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	sqlDB.SetMaxOpenConns(1)

	Expect(db.AutoMigrate(
		&userDatamodel.User{},
		&analystDatamodel.Analyst{},
		&vacationDatamodel.VacationPeriod{},
		&salaryDatamodel.SalaryHistory{},
	)).To(Succeed())

	lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	sessions := auth.NewRegistry(time.Hour, time.Minute)

	userRepo := userPostgres.NewUserRepository(db)
	analystRepo := analystPostgres.NewAnalystRepository(db)

	userService := user.NewService(userRepo, bcrypt.MinCost, lg)
	authService := auth.NewService(authPostgres.NewUserRepository(db), sessions, lg)
	analystService := analyst.NewService(analystRepo, lg)
	vacationService := vacation.NewService(vacationPostgres.NewVacationRepository(db), analystRepo, lg)
	salaryService := salary.NewService(salaryPostgres.NewSalaryRepository(db), analystRepo, lg)

	Expect(userService.EnsureAdmin("admin", "admin123", "Administrador", "admin@example.com")).To(Succeed())

	router := chi.NewRouter()
	rest.RegisterAllRoutes(
		router,
		sqlDB,
		"*",
		auth.NewHandler(authService),
		user.NewHandler(userService),
		analyst.NewHandler(analystService),
		vacation.NewHandler(vacationService),
		salary.NewHandler(salaryService),
		lg,
	)

	return &testServer{
		server:   httptest.NewServer(router),
		db:       db,
		sessions: sessions,
	}
}

func (ts *testServer) close() {
	ts.server.Close()
	ts.sessions.Close()
	if sqlDB, err := ts.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// request performs a JSON request and returns the status plus the raw body.
func (ts *testServer) request(method, path, token string, payload interface{}) (int, []byte) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, body)
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.server.Client().Do(req)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	return resp.StatusCode, raw
}

func (ts *testServer) login(username, password string) string {
	status, body := ts.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	Expect(status).To(Equal(http.StatusOK))

	var resp struct {
		Token string `json:"token"`
	}
	Expect(json.Unmarshal(body, &resp)).To(Succeed())
	Expect(resp.Token).NotTo(BeEmpty())
	return resp.Token
}

func (ts *testServer) createAnalyst(token string, payload map[string]interface{}) int64 {
	status, body := ts.request(http.MethodPost, "/api/v1/analysts", token, payload)
	Expect(status).To(Equal(http.StatusCreated))

	var created struct {
		ID int64 `json:"id"`
	}
	Expect(json.Unmarshal(body, &created)).To(Succeed())
	return created.ID
}

var _ = Describe("REST API", func() {
	var ts *testServer

	BeforeEach(func() {
		ts = newTestServer()
	})

	AfterEach(func() {
		ts.close()
	})

	Describe("health", func() {
		It("should answer ping without authentication", func() {
			status, _ := ts.request(http.MethodGet, "/api/v1/ping", "", nil)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("authentication", func() {
		It("should log in the seeded admin", func() {
			token := ts.login("admin", "admin123")
			status, body := ts.request(http.MethodGet, "/api/v1/auth/me", token, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`"username":"admin"`))
			Expect(string(body)).To(ContainSubstring(`"role":"admin"`))
		})

		It("should reject a wrong password", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
				"username": "admin",
				"password": "wrong",
			})
			Expect(status).To(Equal(http.StatusUnauthorized))
		})

		It("should reject requests without a token", func() {
			status, _ := ts.request(http.MethodGet, "/api/v1/analysts", "", nil)
			Expect(status).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a token that was never issued", func() {
			status, _ := ts.request(http.MethodGet, "/api/v1/analysts", "deadbeef", nil)
			Expect(status).To(Equal(http.StatusUnauthorized))
		})

		It("should invalidate the token on logout", func() {
			token := ts.login("admin", "admin123")

			status, _ := ts.request(http.MethodPost, "/api/v1/auth/logout", token, nil)
			Expect(status).To(Equal(http.StatusOK))

			status, _ = ts.request(http.MethodGet, "/api/v1/auth/me", token, nil)
			Expect(status).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("analyst CRUD", func() {
		var adminToken string

		BeforeEach(func() {
			adminToken = ts.login("admin", "admin123")
		})

		It("should create an analyst with a normalized salary", func() {
			status, body := ts.request(http.MethodPost, "/api/v1/analysts", adminToken, map[string]interface{}{
				"name":          "Ana Souza",
				"position":      "Analista Pleno",
				"startDate":     "2023-03-01",
				"currentSalary": "3500.5",
			})
			Expect(status).To(Equal(http.StatusCreated))
			Expect(string(body)).To(ContainSubstring(`"currentSalary":"3500.50"`))
			Expect(string(body)).To(ContainSubstring(`"isActive":true`))
		})

		It("should reject an analyst without a name", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/analysts", adminToken, map[string]interface{}{
				"position":  "Analista",
				"startDate": "2023-03-01",
			})
			Expect(status).To(Equal(http.StatusBadRequest))
		})

		It("should update only the provided fields", func() {
			id := ts.createAnalyst(adminToken, map[string]interface{}{
				"name":      "Ana Souza",
				"position":  "Analista Pleno",
				"startDate": "2023-03-01",
			})

			status, body := ts.request(http.MethodPut, fmt.Sprintf("/api/v1/analysts/%d", id), adminToken, map[string]interface{}{
				"position": "Analista Senior",
			})
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`"position":"Analista Senior"`))
			Expect(string(body)).To(ContainSubstring(`"name":"Ana Souza"`))
		})

		It("should return 404 for an unknown analyst", func() {
			status, _ := ts.request(http.MethodGet, "/api/v1/analysts/9999", adminToken, nil)
			Expect(status).To(Equal(http.StatusNotFound))

			status, _ = ts.request(http.MethodPut, "/api/v1/analysts/9999", adminToken, map[string]interface{}{
				"name": "Ghost",
			})
			Expect(status).To(Equal(http.StatusNotFound))

			status, _ = ts.request(http.MethodDelete, "/api/v1/analysts/9999", adminToken, nil)
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("should list analysts sorted by name", func() {
			ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Érica Santos", "position": "Analista", "startDate": "2023-03-01",
			})
			ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Ana Souza", "position": "Analista", "startDate": "2023-03-01",
			})

			status, body := ts.request(http.MethodGet, "/api/v1/analysts", adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))

			var listed []struct {
				Name string `json:"name"`
			}
			Expect(json.Unmarshal(body, &listed)).To(Succeed())
			Expect(listed).To(HaveLen(2))
			Expect(listed[0].Name).To(Equal("Ana Souza"))
			Expect(listed[1].Name).To(Equal("Érica Santos"))
		})

		It("should delete an analyst together with its dependent records", func() {
			id := ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Ana Souza", "position": "Analista", "startDate": "2023-03-01", "currentSalary": "3000.00",
			})

			status, _ := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", id), adminToken, map[string]string{
				"startDate": "2025-01-10", "endDate": "2025-01-24",
			})
			Expect(status).To(Equal(http.StatusCreated))

			status, _ = ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/salary-history", id), adminToken, map[string]string{
				"newAmount": "3500.00", "adjustmentDate": "2025-06-01",
			})
			Expect(status).To(Equal(http.StatusCreated))

			status, _ = ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/analysts/%d", id), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))

			status, _ = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d", id), adminToken, nil)
			Expect(status).To(Equal(http.StatusNotFound))

			var vacations, adjustments int64
			Expect(ts.db.Model(&vacationDatamodel.VacationPeriod{}).Where("analyst_id = ?", id).Count(&vacations).Error).To(Succeed())
			Expect(ts.db.Model(&salaryDatamodel.SalaryHistory{}).Where("analyst_id = ?", id).Count(&adjustments).Error).To(Succeed())
			Expect(vacations).To(BeZero())
			Expect(adjustments).To(BeZero())
		})
	})

	Describe("role-based access", func() {
		var adminToken, analystToken string
		var analystID int64

		BeforeEach(func() {
			adminToken = ts.login("admin", "admin123")
			analystID = ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Ana Souza", "position": "Analista", "startDate": "2023-03-01", "currentSalary": "4200.00",
			})

			status, _ := ts.request(http.MethodPost, "/api/v1/users", adminToken, map[string]string{
				"username": "carlos",
				"password": "carlos123",
				"role":     "analyst",
				"name":     "Carlos Pereira",
				"email":    "carlos@example.com",
			})
			Expect(status).To(Equal(http.StatusCreated))

			analystToken = ts.login("carlos", "carlos123")
		})

		It("should hide salary fields from analyst-role callers", func() {
			status, body := ts.request(http.MethodGet, "/api/v1/analysts", analystToken, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).NotTo(ContainSubstring("currentSalary"))
			Expect(string(body)).NotTo(ContainSubstring("lastSalaryAdjustment"))
			Expect(string(body)).NotTo(ContainSubstring("performance"))
			Expect(string(body)).To(ContainSubstring(`"name":"Ana Souza"`))

			status, body = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d", analystID), analystToken, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).NotTo(ContainSubstring("currentSalary"))
		})

		It("should serve admins the full record", func() {
			status, body := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d", analystID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`"currentSalary":"4200.00"`))
		})

		It("should forbid analyst-role callers from writing", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/analysts", analystToken, map[string]interface{}{
				"name": "Novo", "position": "Analista", "startDate": "2024-01-01",
			})
			Expect(status).To(Equal(http.StatusForbidden))

			status, _ = ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/analysts/%d", analystID), analystToken, nil)
			Expect(status).To(Equal(http.StatusForbidden))
		})

		It("should forbid analyst-role callers from reading salary history", func() {
			status, _ := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d/salary-history", analystID), analystToken, nil)
			Expect(status).To(Equal(http.StatusForbidden))
		})

		It("should forbid non-admins from creating accounts", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/users", analystToken, map[string]string{
				"username": "eve",
				"password": "eve12345",
				"role":     "admin",
				"name":     "Eve",
				"email":    "eve@example.com",
			})
			Expect(status).To(Equal(http.StatusForbidden))
		})

		It("should let analyst-role callers read vacation periods", func() {
			status, _ := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), analystToken, nil)
			Expect(status).To(Equal(http.StatusOK))
		})
	})

	Describe("vacation periods", func() {
		var adminToken string
		var analystID int64

		BeforeEach(func() {
			adminToken = ts.login("admin", "admin123")
			analystID = ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Ana Souza", "position": "Analista", "startDate": "2023-03-01",
			})
		})

		It("should list periods ascending by start date", func() {
			for _, dates := range [][2]string{
				{"2025-03-01", "2025-03-10"},
				{"2025-01-10", "2025-01-24"},
				{"2025-02-05", "2025-02-12"},
			} {
				status, _ := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), adminToken, map[string]string{
					"startDate": dates[0], "endDate": dates[1],
				})
				Expect(status).To(Equal(http.StatusCreated))
			}

			status, body := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))

			var listed []struct {
				StartDate time.Time `json:"startDate"`
			}
			Expect(json.Unmarshal(body, &listed)).To(Succeed())
			Expect(listed).To(HaveLen(3))
			Expect(listed[0].StartDate.Before(listed[1].StartDate)).To(BeTrue())
			Expect(listed[1].StartDate.Before(listed[2].StartDate)).To(BeTrue())
		})

		It("should enforce the cap of four periods", func() {
			for month := 1; month <= 4; month++ {
				status, _ := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), adminToken, map[string]string{
					"startDate": fmt.Sprintf("2025-%02d-01", month),
					"endDate":   fmt.Sprintf("2025-%02d-10", month),
				})
				Expect(status).To(Equal(http.StatusCreated))
			}

			status, body := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), adminToken, map[string]string{
				"startDate": "2025-05-01", "endDate": "2025-05-10",
			})
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(string(body)).To(ContainSubstring("maximum of 4"))
		})

		It("should return 404 when the analyst does not exist", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/analysts/9999/vacation-periods", adminToken, map[string]string{
				"startDate": "2025-01-10", "endDate": "2025-01-24",
			})
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("should delete a period by its own id", func() {
			status, body := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/vacation-periods", analystID), adminToken, map[string]string{
				"startDate": "2025-01-10", "endDate": "2025-01-24",
			})
			Expect(status).To(Equal(http.StatusCreated))

			var created struct {
				ID int64 `json:"id"`
			}
			Expect(json.Unmarshal(body, &created)).To(Succeed())

			status, _ = ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/vacation-periods/%d", created.ID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))

			status, _ = ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/vacation-periods/%d", created.ID), adminToken, nil)
			Expect(status).To(Equal(http.StatusNotFound))
		})
	})

	Describe("salary history", func() {
		var adminToken string
		var analystID int64

		BeforeEach(func() {
			adminToken = ts.login("admin", "admin123")
			analystID = ts.createAnalyst(adminToken, map[string]interface{}{
				"name": "Ana Souza", "position": "Analista", "startDate": "2023-03-01", "currentSalary": "3000.00",
			})
		})

		It("should record an adjustment and move the analyst's salary", func() {
			status, body := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/salary-history", analystID), adminToken, map[string]string{
				"newAmount": "3500.00", "adjustmentDate": "2025-06-01",
			})
			Expect(status).To(Equal(http.StatusCreated))
			Expect(string(body)).To(ContainSubstring(`"previousAmount":"3000.00"`))
			Expect(string(body)).To(ContainSubstring(`"newAmount":"3500.00"`))

			status, body = ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d", analystID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`"currentSalary":"3500.00"`))
			Expect(string(body)).To(ContainSubstring("lastSalaryAdjustment"))
		})

		It("should list adjustments most recent first", func() {
			for _, adj := range [][2]string{
				{"3200.00", "2024-06-01"},
				{"3800.00", "2025-06-01"},
				{"3500.00", "2025-01-01"},
			} {
				status, _ := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/salary-history", analystID), adminToken, map[string]string{
					"newAmount": adj[0], "adjustmentDate": adj[1],
				})
				Expect(status).To(Equal(http.StatusCreated))
			}

			status, body := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d/salary-history", analystID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))

			var listed []struct {
				AdjustmentDate time.Time `json:"adjustmentDate"`
			}
			Expect(json.Unmarshal(body, &listed)).To(Succeed())
			Expect(listed).To(HaveLen(3))
			Expect(listed[0].AdjustmentDate.After(listed[1].AdjustmentDate)).To(BeTrue())
			Expect(listed[1].AdjustmentDate.After(listed[2].AdjustmentDate)).To(BeTrue())
		})

		It("should return 404 when the analyst does not exist", func() {
			status, _ := ts.request(http.MethodPost, "/api/v1/analysts/9999/salary-history", adminToken, map[string]string{
				"newAmount": "3500.00", "adjustmentDate": "2025-06-01",
			})
			Expect(status).To(Equal(http.StatusNotFound))
		})

		It("should reject non-finite amounts and leave the salary untouched", func() {
			for _, amount := range []string{"NaN", "Inf", "+Inf", "1e308"} {
				status, _ := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/analysts/%d/salary-history", analystID), adminToken, map[string]string{
					"newAmount": amount, "adjustmentDate": "2025-06-01",
				})
				Expect(status).To(Equal(http.StatusBadRequest), "accepted %q", amount)
			}

			status, body := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/analysts/%d", analystID), adminToken, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(body)).To(ContainSubstring(`"currentSalary":"3000.00"`))
		})
	})
})

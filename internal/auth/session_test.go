package auth_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oltecnologia/analyst-management/internal/auth"
)

var _ = Describe("Session Registry", func() {
	var registry *auth.Registry

	snapshot := auth.SessionUser{
		ID:       1,
		Role:     auth.RoleAdmin,
		Username: "admin",
		Name:     "Administrador",
		Email:    "admin@example.com",
	}

	AfterEach(func() {
		registry.Close()
	})

	Context("with a non-expiring registry", func() {
		BeforeEach(func() {
			registry = auth.NewRegistry(0, 0)
		})

		It("should resolve a created token to the same snapshot", func() {
			token, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			user, ok := registry.Resolve(token)
			Expect(ok).To(BeTrue())
			Expect(user).To(Equal(snapshot))
		})

		It("should miss on a token that was never issued", func() {
			_, ok := registry.Resolve("bogus")
			Expect(ok).To(BeFalse())
		})

		It("should issue unique tokens", func() {
			seen := make(map[string]bool)
			for i := 0; i < 50; i++ {
				token, err := registry.Create(snapshot)
				Expect(err).NotTo(HaveOccurred())
				Expect(seen[token]).To(BeFalse())
				seen[token] = true
			}
		})

		It("should stop resolving a destroyed token", func() {
			token, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())

			registry.Destroy(token)

			_, ok := registry.Resolve(token)
			Expect(ok).To(BeFalse())
		})

		It("should treat destroying the same token twice as a no-op", func() {
			token, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())

			registry.Destroy(token)
			registry.Destroy(token)

			Expect(registry.Len()).To(Equal(0))
		})

		It("should only remove the destroyed session", func() {
			first, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())
			second, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())

			registry.Destroy(first)

			_, ok := registry.Resolve(second)
			Expect(ok).To(BeTrue())
			Expect(registry.Len()).To(Equal(1))
		})
	})

	Context("with a short TTL", func() {
		BeforeEach(func() {
			registry = auth.NewRegistry(20*time.Millisecond, 10*time.Millisecond)
		})

		It("should stop resolving an expired token", func() {
			token, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())

			_, ok := registry.Resolve(token)
			Expect(ok).To(BeTrue())

			Eventually(func() bool {
				_, ok := registry.Resolve(token)
				return ok
			}, "500ms", "10ms").Should(BeFalse())
		})

		It("should sweep expired entries out of the map", func() {
			_, err := registry.Create(snapshot)
			Expect(err).NotTo(HaveOccurred())

			Eventually(registry.Len, "500ms", "10ms").Should(Equal(0))
		})
	})
})

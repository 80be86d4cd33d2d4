package rest_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document every versioned route the router serves", func() {
		for _, path := range []string{
			"/api/v1/auth/login",
			"/api/v1/auth/logout",
			"/api/v1/auth/me",
			"/api/v1/users",
			"/api/v1/users/me",
			"/api/v1/analysts",
			"/api/v1/analysts/{id}",
			"/api/v1/analysts/{id}/vacation-periods",
			"/api/v1/analysts/{id}/salary-history",
			"/api/v1/vacation-periods/{id}",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should keep the restricted fields out of the create-analyst required set", func() {
		schema := doc.Components.Schemas["CreateAnalystRequest"]
		Expect(schema).NotTo(BeNil())
		Expect(schema.Value.Required).To(ConsistOf("name", "position", "startDate"))
	})
})

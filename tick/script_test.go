package tick

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/arbsim/arbitration"
)

var _ = Describe("Script", func() {
	It("should play back requests and then go idle", func() {
		s, err := ParseScriptList("A, AB,b", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Len()).To(Equal(3))

		Expect(s.Sample(0)).To(Equal(arbitration.RequestVector{A: true}))
		Expect(s.Sample(1)).To(Equal(arbitration.RequestVector{A: true, B: true}))
		Expect(s.Sample(2)).To(Equal(arbitration.RequestVector{B: true}))
		Expect(s.Sample(3).Idle()).To(BeTrue())
	})

	It("should repeat when asked to", func() {
		s, err := ParseScript([]string{"A", "B"}, true)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Sample(4)).To(Equal(arbitration.RequestVector{A: true}))
		Expect(s.Sample(5)).To(Equal(arbitration.RequestVector{B: true}))
	})

	It("should sample idle from an empty script", func() {
		s, err := ParseScriptList("", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Sample(10).Idle()).To(BeTrue())
	})

	It("should reject bad requests", func() {
		_, err := ParseScriptList("A,X", false)
		Expect(err).To(HaveOccurred())
	})
})

package fd_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"

	"github.com/gitrdm/fdprop/pkg/fd"
)

func TestBoolean(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Boolean Combinator Suite")
}

var _ = Describe("Boolean combinators", func() {
	var (
		s    *fd.Store
		x, y *fd.IntVar
		b    *fd.IntVar
	)

	BeforeEach(func() {
		s = fd.NewStore()
		x = s.NewIntVar("x", 0, 9)
		y = s.NewIntVar("y", 0, 9)
		b = s.NewBoolVar("b")
	})

	impose := func(c fd.Constraint) error {
		return s.ImposeWithConsistency(c)
	}

	Describe("And", func() {
		It("propagates every child", func() {
			Expect(impose(fd.NewAnd(fd.NewXgteqC(x, 3), fd.NewXlteqC(x, 5)))).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{3..5}"))
		})

		It("reaches a fixpoint across children", func() {
			Expect(impose(fd.NewAnd(fd.NewXltY(x, y), fd.NewXlteqC(y, 4), fd.NewXgteqC(x, 2)))).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{2..3}"))
			Expect(y.Domain().String()).To(Equal("{3..4}"))
		})

		It("rejects an empty conjunction", func() {
			Expect(impose(fd.NewAnd())).To(MatchError(fd.ErrModel))
		})

		It("gives its children identifiers", func() {
			c1, c2 := fd.NewXgteqC(x, 3), fd.NewXlteqC(x, 5)
			and := fd.NewAnd(c1, c2)
			Expect(impose(and)).To(Succeed())
			Expect(and.ID()).NotTo(BeZero())
			Expect(c1.ID()).NotTo(BeZero())
			Expect(c2.ID()).NotTo(Equal(c1.ID()))
			Expect(c1.Imposed()).To(BeFalse())
		})
	})

	Describe("Or", func() {
		It("waits while two disjuncts are open", func() {
			Expect(impose(fd.NewOr(fd.NewXeqC(x, 1), fd.NewXeqC(x, 2)))).To(Succeed())
			Expect(x.Size()).To(Equal(10))
		})

		It("propagates the last open disjunct", func() {
			Expect(impose(fd.NewOr(fd.NewXeqC(x, 1), fd.NewXeqC(x, 2)))).To(Succeed())
			Expect(x.InComplement(1)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{2}"))
		})

		It("fails when every disjunct is violated", func() {
			Expect(x.InMin(5)).To(Succeed())
			err := impose(fd.NewOr(fd.NewXeqC(x, 1), fd.NewXlteqC(x, 2)))
			Expect(err).To(HaveOccurred())
			Expect(fd.IsFailure(err)).To(BeTrue())
		})
	})

	Describe("Not", func() {
		It("propagates the negation of its child", func() {
			Expect(impose(fd.NewNot(fd.NewXeqC(x, 3)))).To(Succeed())
			Expect(x.Contains(3)).To(BeFalse())
		})

		It("turns a strict order around", func() {
			Expect(impose(fd.NewNot(fd.NewXltY(x, y)))).To(Succeed())
			Expect(y.InMin(6)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{6..9}"))
		})
	})

	Describe("De Morgan", func() {
		run := func(build func() fd.Constraint) (string, string) {
			s = fd.NewStore()
			x = s.NewIntVar("x", 0, 9)
			y = s.NewIntVar("y", 0, 9)
			Expect(y.InMax(3)).To(Succeed())
			Expect(impose(build())).To(Succeed())
			return x.Domain().String(), y.Domain().String()
		}

		It("propagates not(a and b) like (not a) or (not b)", func() {
			x1, y1 := run(func() fd.Constraint {
				return fd.NewNot(fd.NewAnd(fd.NewXlteqC(x, 3), fd.NewXlteqC(y, 3)))
			})
			x2, y2 := run(func() fd.Constraint {
				return fd.NewOr(fd.NewNot(fd.NewXlteqC(x, 3)), fd.NewNot(fd.NewXlteqC(y, 3)))
			})
			Expect(x1).To(Equal("{4..9}"))
			Expect(x2).To(Equal(x1))
			Expect(y2).To(Equal(y1))
		})

		It("propagates not(a or b) like (not a) and (not b)", func() {
			x1, y1 := run(func() fd.Constraint {
				return fd.NewNot(fd.NewOr(fd.NewXlteqC(x, 3), fd.NewXeqC(y, 2)))
			})
			x2, y2 := run(func() fd.Constraint {
				return fd.NewAnd(fd.NewNot(fd.NewXlteqC(x, 3)), fd.NewNot(fd.NewXeqC(y, 2)))
			})
			Expect(x1).To(Equal("{4..9}"))
			Expect(y1).To(Equal("{0..1, 3}"))
			Expect(x2).To(Equal(x1))
			Expect(y2).To(Equal(y1))
		})
	})

	Describe("Eq", func() {
		It("propagates the right side once the left is entailed", func() {
			Expect(impose(fd.NewEq(fd.NewXeqC(x, 1), fd.NewXeqC(y, 1)))).To(Succeed())
			Expect(x.InValue(1)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(y.Domain().String()).To(Equal("{1}"))
		})

		It("propagates the left side once the right is disentailed", func() {
			Expect(impose(fd.NewEq(fd.NewXeqC(x, 1), fd.NewXeqC(y, 1)))).To(Succeed())
			Expect(y.InComplement(1)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Contains(1)).To(BeFalse())
		})
	})

	Describe("Reified", func() {
		It("sets the guard when the constraint is entailed", func() {
			Expect(x.InMax(3)).To(Succeed())
			r, err := fd.NewReified(fd.NewXlteqC(x, 5), b)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(r)).To(Succeed())
			Expect(b.Domain().String()).To(Equal("{1}"))
			Expect(r.Satisfied()).To(BeTrue())
		})

		It("clears the guard when the constraint is disentailed", func() {
			Expect(x.InMin(7)).To(Succeed())
			r, err := fd.NewReified(fd.NewXlteqC(x, 5), b)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(r)).To(Succeed())
			Expect(b.Domain().String()).To(Equal("{0}"))
		})

		It("propagates the negation when the guard is cleared, and undoes it on backtrack", func() {
			r, err := fd.NewReified(fd.NewXlteqC(x, 5), b)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(r)).To(Succeed())

			s.Push()
			Expect(b.InValue(0)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{6..9}"))
			s.Pop()

			Expect(x.Domain().String()).To(Equal("{0..9}"))
			Expect(b.Domain().String()).To(Equal("{0..1}"))
			Expect(s.Stats()).To(MatchFields(IgnoreExtras, Fields{
				"Variables":  Equal(3),
				"Backtracks": Equal(1),
				"MaxLevel":   Equal(1),
				"Failures":   BeZero(),
			}))

			s.Push()
			Expect(b.InValue(1)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Domain().String()).To(Equal("{0..5}"))
		})

		It("rejects a guard that is not 0/1", func() {
			_, err := fd.NewReified(fd.NewXeqC(x, 1), y)
			Expect(err).To(MatchError(fd.ErrModel))
			_, err = fd.NewXor(fd.NewXeqC(x, 1), nil)
			Expect(err).To(MatchError(fd.ErrModel))
		})
	})

	Describe("Xor", func() {
		It("propagates the negation when the guard is set", func() {
			c, err := fd.NewXor(fd.NewXeqC(x, 2), b)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(c)).To(Succeed())
			Expect(b.InValue(1)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(x.Contains(2)).To(BeFalse())
		})

		It("clears the guard when the constraint is entailed", func() {
			c, err := fd.NewXor(fd.NewXeqC(x, 2), b)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(c)).To(Succeed())
			Expect(x.InValue(2)).To(Succeed())
			Expect(s.Consistency()).To(Succeed())
			Expect(b.Domain().String()).To(Equal("{0}"))
		})
	})

	Describe("Reified inside Sum", func() {
		It("counts the entailed comparisons", func() {
			vars := []*fd.IntVar{s.NewIntVar("a", 0, 2), s.NewIntVar("c", 3, 9), s.NewIntVar("d", 4, 9)}
			guards := make([]*fd.IntVar, len(vars))
			for i, v := range vars {
				guards[i] = s.NewBoolVar("")
				r, err := fd.NewReified(fd.NewXgteqC(v, 3), guards[i])
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Impose(r)).To(Succeed())
			}
			count := s.NewIntVar("count", 0, 3)
			sum, err := fd.NewSum(guards, count)
			Expect(err).NotTo(HaveOccurred())
			Expect(impose(sum)).To(Succeed())
			Expect(count.Domain().String()).To(Equal("{2}"))
		})
	})
})

package dram_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/dram"
	"github.com/sarchlab/drampower/spec"
)

var _ = Describe("StateMachine", func() {
	var (
		ms *spec.MemorySpec
		sm *dram.StateMachine
	)

	BeforeEach(func() {
		ms = spec.DefaultDDR5_6400()
		ms.Architecture.Banks = 4
		sm = dram.NewStateMachine(ms)
	})

	Describe("initial state", func() {
		It("should start with every bank idle and no open row", func() {
			Expect(sm.TotalBanks()).To(Equal(4))
			for b := 0; b < 4; b++ {
				info := sm.BankInfo(0, b)
				Expect(info.State).To(Equal(dram.StateIdle))
				Expect(info.HasOpenRow()).To(BeFalse())
			}
		})

		It("should count all banks as precharged standby", func() {
			o := sm.Occupancy()
			Expect(o.PrechargedStandby).To(Equal(4))
			Expect(o.ActiveStandby).To(Equal(0))
		})
	})

	Describe("Activate", func() {
		It("should open the row", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			info := sm.BankInfo(0, 0)
			Expect(info.State).To(Equal(dram.StateActive))
			Expect(info.OpenRow).To(Equal(512))

			row, ok := sm.OpenRow(0, 0)
			Expect(ok).To(BeTrue())
			Expect(row).To(Equal(512))
		})

		It("should reject a second activate without precharge", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			err := sm.Activate(0, 0, 513)
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&dram.Violation{}))
			Expect(err.(*dram.Violation).Kind).To(Equal(dram.StateConflict))
		})

		It("should enforce tRC between activates of the same bank", func() {
			sm.AdvanceTo(10)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			sm.AdvanceTo(10 + ms.Timing.TRAS)
			Expect(sm.Precharge(0, 0)).To(Succeed())

			// tRC is 45.75 ns; try again only 40 ns after the activate.
			sm.AdvanceTo(50)
			err := sm.Activate(0, 0, 513)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Kind).To(Equal(dram.TimingViolation))
			Expect(err.(*dram.Violation).Constraint).To(Equal("tRC"))
			Expect(err.Error()).To(ContainSubstring("tRC"))

			// Past tRC it succeeds.
			sm.AdvanceTo(10 + ms.Timing.TRC)
			Expect(sm.Activate(0, 0, 513)).To(Succeed())
		})

		It("should not disturb state when rejected", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())
			Expect(sm.Activate(0, 0, 999)).NotTo(Succeed())

			info := sm.BankInfo(0, 0)
			Expect(info.OpenRow).To(Equal(512))
		})
	})

	Describe("Read and Write", func() {
		It("should reject a read on an idle bank", func() {
			sm.AdvanceTo(0)
			err := sm.Read(0, 0)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Kind).To(Equal(dram.StateConflict))
			Expect(err.Error()).To(ContainSubstring("active"))
		})

		It("should enforce tRCD after activate", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			sm.AdvanceTo(5) // tRCD is 13.75 ns
			err := sm.Read(0, 0)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Constraint).To(Equal("tRCD"))

			sm.AdvanceTo(ms.Timing.TRCD)
			Expect(sm.Read(0, 0)).To(Succeed())
			Expect(sm.BankInfo(0, 0).LastRead).To(Equal(ms.Timing.TRCD))
		})

		It("should apply the same rule to writes", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			sm.AdvanceTo(5)
			Expect(sm.Write(0, 0)).NotTo(Succeed())

			sm.AdvanceTo(20)
			Expect(sm.Write(0, 0)).To(Succeed())
			Expect(sm.BankInfo(0, 0).LastWrite).To(Equal(20.0))
		})
	})

	Describe("Precharge", func() {
		It("should reject precharge of an idle bank", func() {
			sm.AdvanceTo(0)
			err := sm.Precharge(0, 0)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Kind).To(Equal(dram.StateConflict))
		})

		It("should enforce tRAS on an active bank", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			sm.AdvanceTo(10) // tRAS is 32 ns
			err := sm.Precharge(0, 0)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Constraint).To(Equal("tRAS"))
			Expect(err.Error()).To(ContainSubstring("tRAS"))

			sm.AdvanceTo(ms.Timing.TRAS)
			Expect(sm.Precharge(0, 0)).To(Succeed())

			info := sm.BankInfo(0, 0)
			Expect(info.State).To(Equal(dram.StateIdle))
			Expect(info.HasOpenRow()).To(BeFalse())
		})

		It("should enforce tWR after a write", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())

			sm.AdvanceTo(40)
			Expect(sm.Write(0, 0)).To(Succeed())

			// tRAS satisfied, but only 10 ns since the write (tWR 15).
			sm.AdvanceTo(50)
			err := sm.Precharge(0, 0)
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Constraint).To(Equal("tWR"))

			sm.AdvanceTo(55)
			Expect(sm.Precharge(0, 0)).To(Succeed())
		})
	})

	Describe("Refresh", func() {
		It("should close every open row", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 0, 512)).To(Succeed())
			Expect(sm.Activate(0, 1, 7)).To(Succeed())

			sm.AdvanceTo(100)
			Expect(sm.Refresh()).To(Succeed())

			for b := 0; b < 4; b++ {
				info := sm.BankInfo(0, b)
				Expect(info.State).To(Equal(dram.StateIdle))
				Expect(info.HasOpenRow()).To(BeFalse())
			}
		})

		It("should enforce tREFI between refreshes", func() {
			sm.AdvanceTo(0)
			Expect(sm.Refresh()).To(Succeed())

			sm.AdvanceTo(100) // tREFI is 7800 ns
			err := sm.Refresh()
			Expect(err).To(HaveOccurred())
			Expect(err.(*dram.Violation).Constraint).To(Equal("tREFI"))

			sm.AdvanceTo(7800)
			Expect(sm.Refresh()).To(Succeed())
		})
	})

	Describe("queries", func() {
		It("should enumerate banks by state", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 1, 512)).To(Succeed())
			Expect(sm.Activate(0, 3, 513)).To(Succeed())

			active := sm.BanksInState(dram.StateActive)
			Expect(active).To(ConsistOf(
				dram.BankAddr{Rank: 0, Bank: 1},
				dram.BankAddr{Rank: 0, Bank: 3},
			))

			idle := sm.BanksInState(dram.StateIdle)
			Expect(idle).To(HaveLen(2))
		})

		It("should keep open rows defined exactly on active banks", func() {
			sm.AdvanceTo(0)
			Expect(sm.Activate(0, 2, 77)).To(Succeed())

			for b := 0; b < 4; b++ {
				info := sm.BankInfo(0, b)
				Expect(info.HasOpenRow()).To(Equal(info.State == dram.StateActive))
			}
		})
	})

	Describe("addressing", func() {
		It("should panic on an out-of-range bank", func() {
			Expect(func() { sm.BankInfo(0, 99) }).To(Panic())
		})

		It("should panic on an out-of-range rank", func() {
			Expect(func() { _ = sm.Read(3, 0) }).To(Panic())
		})
	})

	Describe("multi-rank devices", func() {
		It("should track ranks independently", func() {
			ms2 := spec.DefaultDDR5_6400()
			ms2.Architecture.Ranks = 2
			ms2.Architecture.Banks = 2
			sm2 := dram.NewStateMachine(ms2)

			sm2.AdvanceTo(0)
			Expect(sm2.Activate(1, 0, 42)).To(Succeed())

			Expect(sm2.BankInfo(1, 0).State).To(Equal(dram.StateActive))
			Expect(sm2.BankInfo(0, 0).State).To(Equal(dram.StateIdle))
			Expect(sm2.TotalBanks()).To(Equal(4))
		})
	})
})

package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/dram"
	"github.com/sarchlab/drampower/sim"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

func cmd(ts int64, kind trace.Kind) trace.Command {
	return trace.Command{
		Timestamp: ts, Kind: kind,
		Bank: -1, Row: -1, Column: -1,
	}
}

func act(ts int64, bank, row int) trace.Command {
	c := cmd(ts, trace.KindActivate)
	c.Bank = bank
	c.Row = row
	return c
}

func rd(ts int64, bank, burst int) trace.Command {
	c := cmd(ts, trace.KindRead)
	c.Bank = bank
	c.BurstLength = burst
	return c
}

func wr(ts int64, bank, burst int) trace.Command {
	c := cmd(ts, trace.KindWrite)
	c.Bank = bank
	c.BurstLength = burst
	return c
}

func pre(ts int64, bank int) trace.Command {
	c := cmd(ts, trace.KindPrecharge)
	c.Bank = bank
	return c
}

func workload(cmds ...trace.Command) *trace.Workload {
	return &trace.Workload{Commands: cmds}
}

var _ = Describe("Simulator", func() {
	var (
		ms *spec.MemorySpec
		s  *sim.Simulator
	)

	BeforeEach(func() {
		ms = spec.DefaultDDR5_6400()
		ms.Architecture.Banks = 4
		s = sim.New(ms)
	})

	Describe("basic traces", func() {
		It("should run an activate-read-precharge trace cleanly", func() {
			r := s.Simulate(workload(
				act(0, 0, 512),
				rd(50, 0, 16),
				pre(150, 0),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(BeEmpty())
			Expect(s.Warnings()).To(BeEmpty())
			Expect(r.ActivationEnergy).To(BeNumerically(">", 0))
			Expect(r.ReadEnergy).To(BeNumerically(">", 0))
			Expect(r.PrechargeEnergy).To(BeNumerically(">", 0))
			Expect(r.TotalEnergy).To(BeNumerically(">", 0))
			Expect(r.SimulationTime).To(BeNumerically("~", 1000*0.312, 1e-9))
		})

		It("should satisfy the category-sum invariant", func() {
			r := s.Simulate(workload(
				act(0, 0, 512),
				rd(50, 0, 16),
				wr(120, 0, 16),
				pre(250, 0),
				cmd(25000, trace.KindRefresh),
				cmd(50000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(BeEmpty())

			sum := 0.0
			for _, c := range r.Categories() {
				sum += c
			}
			Expect(r.TotalEnergy).To(BeNumerically("~", sum, 1e-1))
			Expect(r.TotalEnergy).To(BeNumerically("~",
				r.CoreEnergy+r.InterfaceEnergy, 1e-9))
			Expect(r.AveragePower).To(BeNumerically("~",
				r.TotalEnergy/r.SimulationTime*1000, 1e-9))
		})

		It("should accumulate background energy across idle gaps", func() {
			r := s.Simulate(workload(
				act(0, 0, 512),
				cmd(10000, trace.KindEndOfSimulation),
			))

			Expect(r.BackgroundActiveEnergy).To(BeNumerically(">", 0))
			Expect(r.BackgroundPrechargeEnergy).To(BeNumerically(">", 0))
		})
	})

	Describe("empty traces", func() {
		It("should produce one fatal error and a finalized zero result", func() {
			r := s.Simulate(workload())

			Expect(s.Errors()).To(ConsistOf("No commands in workload"))
			Expect(r.TotalEnergy).To(BeZero())
			Expect(r.SimulationTime).To(BeZero())
			Expect(r.AveragePower).To(BeZero())
		})
	})

	Describe("ordering", func() {
		It("should produce identical results for shuffled input", func() {
			ordered := []trace.Command{
				act(0, 0, 512),
				rd(50, 0, 16),
				pre(150, 0),
				cmd(1000, trace.KindEndOfSimulation),
			}
			shuffled := []trace.Command{
				ordered[2], ordered[0], ordered[3], ordered[1],
			}

			r1 := sim.New(ms).Simulate(&trace.Workload{Commands: ordered})

			s2 := sim.New(ms)
			r2 := s2.Simulate(&trace.Workload{Commands: shuffled})

			Expect(s2.Errors()).To(BeEmpty())
			Expect(r2).To(Equal(r1))
		})
	})

	Describe("recoverable violations", func() {
		It("should record a tRAS violation and keep simulating", func() {
			// 10 cycles is about 3.12 ns, far below tRAS (32 ns).
			r := s.Simulate(workload(
				act(0, 0, 512),
				pre(10, 0),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(HaveLen(1))
			Expect(s.Errors()[0]).To(ContainSubstring("Command PRE at 10 cycles:"))
			Expect(s.Errors()[0]).To(ContainSubstring("tRAS"))
			Expect(r.PrechargeEnergy).To(BeZero())
			Expect(r.ActivationEnergy).To(BeNumerically(">", 0))
		})

		It("should reject a read on an idle bank but charge legal commands", func() {
			r := s.Simulate(workload(
				rd(0, 0, 16),
				act(100, 0, 512),
				rd(200, 0, 16),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(HaveLen(1))
			Expect(s.Errors()[0]).To(ContainSubstring("Command RD at 0 cycles:"))
			Expect(r.ReadEnergy).To(BeNumerically(">", 0))
		})

		It("should make a repeated activate illegal without time progress", func() {
			s.Simulate(workload(
				act(0, 0, 512),
				act(0, 0, 512),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(HaveLen(1))
			Expect(s.Errors()[0]).To(ContainSubstring("already active"))
		})

		It("should reject an activate without a row", func() {
			c := cmd(0, trace.KindActivate)
			c.Bank = 0
			s.Simulate(workload(c, cmd(10, trace.KindEndOfSimulation)))

			Expect(s.Errors()).To(ConsistOf(
				"Command ACT at 0 cycles: ACT command requires row"))
		})
	})

	Describe("precharge all", func() {
		It("should close every bank in the rank", func() {
			s.Simulate(workload(
				act(0, 0, 1),
				act(20, 1, 2),
				act(40, 2, 3),
				cmd(400, trace.KindPrechargeAll),
				cmd(1000, trace.KindEndOfSimulation),
			))

			// The idle bank makes PREA report one failure; the three
			// active banks still precharge.
			Expect(s.Errors()).To(HaveLen(1))
			Expect(s.Errors()[0]).To(ContainSubstring("PREA"))

			m := s.StateMachine()
			Expect(m.BanksInState(dram.StateActive)).To(BeEmpty())
			Expect(m.BanksInState(dram.StateIdle)).To(HaveLen(4))
		})

		It("should report the first failure", func() {
			// All banks idle: every precharge fails; bank 0 is first.
			s.Simulate(workload(
				cmd(0, trace.KindPrechargeAll),
				cmd(10, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(HaveLen(1))
			Expect(s.Errors()[0]).To(ContainSubstring("already idle"))
		})
	})

	Describe("refresh", func() {
		It("should charge exactly IDD5B x VDD x tRFC / 1000 per refresh", func() {
			r := s.Simulate(workload(
				cmd(0, trace.KindRefresh),
				cmd(10000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(BeEmpty())
			// 80 mA x 1.1 V x 280 ns / 1000 = 24.64 nJ
			Expect(r.RefreshEnergy).To(BeNumerically("~", 24.64, 1e-9))
		})

		It("should require a bank for per-bank refresh", func() {
			s.Simulate(workload(
				cmd(0, trace.KindRefreshPerBank),
				cmd(10, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(ConsistOf(
				"Command REFPB at 0 cycles: REFPB command requires bank"))
		})

		It("should treat per-bank refresh as a full refresh", func() {
			c := cmd(0, trace.KindRefreshPerBank)
			c.Bank = 2
			r := s.Simulate(workload(c, cmd(10000, trace.KindEndOfSimulation)))

			Expect(s.Errors()).To(BeEmpty())
			Expect(r.RefreshEnergy).To(BeNumerically(">", 0))
		})
	})

	Describe("end of simulation", func() {
		It("should stop processing at the marker", func() {
			s.Simulate(workload(
				act(0, 0, 512),
				cmd(500, trace.KindEndOfSimulation),
				act(600, 1, 7),
			))

			Expect(s.Errors()).To(BeEmpty())
			m := s.StateMachine()
			Expect(m.BankInfo(0, 1).State).To(Equal(dram.StateIdle))
		})

		It("should set the duration from the marker", func() {
			r := s.Simulate(workload(
				act(0, 0, 512),
				cmd(2000, trace.KindEndOfSimulation),
			))

			Expect(r.SimulationTime).To(BeNumerically("~", 2000*0.312, 1e-9))
		})
	})

	Describe("pass-through commands", func() {
		It("should accept power-down and self-refresh entries", func() {
			r := s.Simulate(workload(
				cmd(0, trace.KindPowerDown),
				cmd(100, trace.KindSelfRefresh),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(BeEmpty())
			Expect(r.PowerDownEnergy).To(BeZero())
		})
	})

	Describe("rank handling", func() {
		It("should default a bankless command to bank 0", func() {
			s.Simulate(workload(
				act(0, -1, 512),
				cmd(1000, trace.KindEndOfSimulation),
			))

			Expect(s.Errors()).To(BeEmpty())
			Expect(s.StateMachine().BankInfo(0, 0).State).
				To(Equal(dram.StateActive))
		})
	})
})

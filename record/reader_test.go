package record_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/drampower/record"
	"github.com/sarchlab/drampower/sim"
	"github.com/sarchlab/drampower/spec"
	"github.com/sarchlab/drampower/trace"
)

var _ = Describe("Reader", func() {
	It("should read back a recorded run", func() {
		base := filepath.Join(GinkgoT().TempDir(), "run")
		rec := record.NewRecorder(base)

		ms := spec.DefaultDDR5_6400()
		s := sim.New(ms, sim.WithRecorder(rec))
		result := s.Simulate(&trace.Workload{Commands: []trace.Command{
			{Timestamp: 0, Kind: trace.KindActivate, Bank: 0, Row: 512, Column: -1},
			{Timestamp: 50, Kind: trace.KindRead, Bank: 0, Row: -1, Column: 0, BurstLength: 16},
			{Timestamp: 1000, Kind: trace.KindEndOfSimulation, Bank: -1, Row: -1, Column: -1},
		}})
		Expect(s.Errors()).To(BeEmpty())
		Expect(rec.Close()).To(Succeed())

		dbFile := base + ".sqlite3"

		summary, err := record.ReadSummary(dbFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.TotalEnergyNJ).To(BeNumerically("~", result.TotalEnergy, 1e-6))
		Expect(summary.AveragePowerMW).To(BeNumerically("~", result.AveragePower, 1e-6))
		Expect(summary.ErrorCount).To(BeZero())

		events, err := record.ReadCommandEnergies(dbFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(events).To(HaveLen(2))
		Expect(events[0].Command).To(Equal("ACT"))
		Expect(events[1].Command).To(Equal("RD"))
		Expect(events[1].EnergyNJ).To(BeNumerically(">", 0))
	})

	It("should fail on a database without a summary", func() {
		_, err := record.ReadSummary(filepath.Join(GinkgoT().TempDir(), "missing.sqlite3"))
		Expect(err).To(HaveOccurred())
	})
})

package record

import (
	"database/sql"
	"fmt"

	// SQLite driver for reading run databases back.
	_ "github.com/mattn/go-sqlite3"
)

// ReadSummary loads the run summary from a recorded database file.
func ReadSummary(dbFile string) (Summary, error) {
	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open run database: %w", err)
	}
	defer func() { _ = db.Close() }()

	row := db.QueryRow(`SELECT
		ActivationEnergyNJ, ReadEnergyNJ, WriteEnergyNJ,
		PrechargeEnergyNJ, RefreshEnergyNJ,
		BackgroundActiveEnergyNJ, BackgroundPrechargeEnergyNJ,
		PowerDownEnergyNJ, TerminationEnergyNJ, DynamicIOEnergyNJ,
		CoreEnergyNJ, InterfaceEnergyNJ, TotalEnergyNJ,
		SimulationTimeNS, AveragePowerMW,
		ErrorCount, WarningCount
		FROM ` + SummaryTable + ` LIMIT 1`)

	var s Summary
	err = row.Scan(
		&s.ActivationEnergyNJ, &s.ReadEnergyNJ, &s.WriteEnergyNJ,
		&s.PrechargeEnergyNJ, &s.RefreshEnergyNJ,
		&s.BackgroundActiveEnergyNJ, &s.BackgroundPrechargeEnergyNJ,
		&s.PowerDownEnergyNJ, &s.TerminationEnergyNJ, &s.DynamicIOEnergyNJ,
		&s.CoreEnergyNJ, &s.InterfaceEnergyNJ, &s.TotalEnergyNJ,
		&s.SimulationTimeNS, &s.AveragePowerMW,
		&s.ErrorCount, &s.WarningCount,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read run summary: %w", err)
	}

	return s, nil
}

// ReadCommandEnergies loads the per-command energy trace from a
// recorded database file, in trace order.
func ReadCommandEnergies(dbFile string) ([]CommandEnergy, error) {
	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`SELECT
		Seq, Command, TimestampCycles, TimeNS, Rank, Bank, EnergyNJ
		FROM ` + CommandTable + ` ORDER BY Seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to read command energies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []CommandEnergy
	for rows.Next() {
		var e CommandEnergy
		err := rows.Scan(&e.Seq, &e.Command, &e.TimestampCycles,
			&e.TimeNS, &e.Rank, &e.Bank, &e.EnergyNJ)
		if err != nil {
			return nil, fmt.Errorf("failed to scan command energy: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

package feature

import (
	"fmt"
	"time"
)

// CycleState is the current phase of one open-world zone.
type CycleState struct {
	State    string `json:"state"`
	Expiry   string `json:"expiry"`
	TimeLeft string `json:"timeLeft"`
}

// Cycles is the phase of every open-world zone at one instant.
type Cycles struct {
	Vallis  CycleState `json:"vallis"`
	Cetus   CycleState `json:"cetus"`
	Cambion CycleState `json:"cambion"`
}

// Zone cycles are fixed periodic functions of wall-clock time. The epochs
// below are derived from one observed snapshot at the anchor instant:
// Vallis read Cold 7m13s remaining, Cetus Night 13m22s, Cambion Vome
// 13m22s.
var cycleAnchor = time.Date(2025, time.October, 31, 8, 33, 6, 0, time.UTC).UnixMilli()

const (
	vallisWarmMS  = 400_000   // 6m40s
	vallisCycleMS = 1_600_000 // 26m40s

	cetusDayMS   = 100 * 60 * 1000
	cetusNightMS = 50 * 60 * 1000
	cetusCycleMS = cetusDayMS + cetusNightMS

	cambionPhaseMS = 30 * 60 * 1000
	cambionCycleMS = 2 * cambionPhaseMS
)

// ZoneCycles computes the phase of each zone at the given instant.
func ZoneCycles(now time.Time) Cycles {
	nowMS := now.UnixMilli()
	return Cycles{
		Vallis:  vallisCycle(nowMS),
		Cetus:   twoPhaseCycle(nowMS, cetusEpoch(), cetusDayMS, cetusCycleMS, "day", "night"),
		Cambion: twoPhaseCycle(nowMS, cambionEpoch(), cambionPhaseMS, cambionCycleMS, "fass", "vome"),
	}
}

func vallisEpoch() int64 {
	coldLen := int64(vallisCycleMS - vallisWarmMS)
	targetElapsed := int64(vallisWarmMS) + (coldLen - 433_000)
	return cycleAnchor - targetElapsed
}

func cetusEpoch() int64 {
	targetElapsed := int64(cetusDayMS) + (int64(cetusNightMS) - 802_000)
	return cycleAnchor - targetElapsed
}

func cambionEpoch() int64 {
	targetElapsed := int64(cambionPhaseMS) + (int64(cambionPhaseMS) - 802_000)
	return cycleAnchor - targetElapsed
}

func vallisCycle(nowMS int64) CycleState {
	epoch := vallisEpoch()
	cycleStart := epoch + (nowMS-epoch)/vallisCycleMS*vallisCycleMS
	coldStart := cycleStart + vallisWarmMS
	cycleEnd := cycleStart + vallisCycleMS

	// The warm window is closed at its end instant.
	if nowMS > coldStart {
		return CycleState{
			State:    "cold",
			Expiry:   time.UnixMilli(cycleEnd).UTC().Format(time.RFC3339),
			TimeLeft: formatCycleTimeLeft(cycleEnd - nowMS),
		}
	}
	return CycleState{
		State:    "warm",
		Expiry:   time.UnixMilli(coldStart).UTC().Format(time.RFC3339),
		TimeLeft: formatCycleTimeLeft(coldStart - nowMS),
	}
}

func twoPhaseCycle(nowMS, epoch, firstLenMS, cycleLenMS int64, first, second string) CycleState {
	cycleStart := epoch + (nowMS-epoch)/cycleLenMS*cycleLenMS
	elapsed := nowMS - cycleStart

	state := first
	stateEnd := cycleStart + firstLenMS
	if elapsed >= firstLenMS {
		state = second
		stateEnd = cycleStart + cycleLenMS
	}
	return CycleState{
		State:    state,
		Expiry:   time.UnixMilli(stateEnd).UTC().Format(time.RFC3339),
		TimeLeft: formatCycleTimeLeft(stateEnd - nowMS),
	}
}

// formatCycleTimeLeft renders remaining millis as "H:MM:SS", or "M:SS"
// under an hour.
func formatCycleTimeLeft(ms int64) string {
	total := ms / 1000
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

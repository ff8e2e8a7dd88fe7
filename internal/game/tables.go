package game

// Time constants.
const (
	DefaultRunYears    = 2
	DaysPerYear        = 365
	QuarterDays        = 91
	TotalQuarters      = 8
	IntradayTotalTicks = 390 // 9:30 AM - 4:00 PM, one tick per minute
)

// Market process constants.
const (
	BaseVolatility    = 0.02   // 2% daily
	BullDrift         = 0.0003 // slight upward bias
	EventChancePerDay = 0.08
	HistoryWindow     = 400 // bounded price/OHLC buffers
	MinPrice          = 0.01
	// Historical series hold trading days only; calendar days map onto
	// them at roughly 252/365.
	TradingDayRatio = 252.0 / 365.0
)

// SEC stage thresholds; the highest threshold at or below the attention
// value decides the stage.
const (
	ThresholdMonitoring    = 30
	ThresholdInquiry       = 60
	ThresholdInvestigation = 80
	ThresholdGrandJury     = 95
)

// Attention hits.
const (
	InsiderTradeSECHit = 12
	FrontRunSECHit     = 15
)

// Prestige.
const (
	AllQuartersBonusPP = 10
	// A run that failed even the first level still pays something.
	MinRunPP = 0.5
)

// SpeedOptions players can pick; 20x and up require the Speed Demon title.
var SpeedOptions = []float64{0.5, 1, 2, 5, 10, 20, 50}

// QuarterlyTargets is the 8-level net-worth deadline ladder.
var QuarterlyTargets = []QuarterlyTarget{
	{Level: 1, Label: "Q1 Y1", Target: 15_000, PP: 2},
	{Level: 2, Label: "Q2 Y1", Target: 50_000, PP: 3},
	{Level: 3, Label: "Q3 Y1", Target: 250_000, PP: 4},
	{Level: 4, Label: "Q4 Y1", Target: 1_000_000, PP: 5},
	{Level: 5, Label: "Q1 Y2", Target: 10_000_000, PP: 7},
	{Level: 6, Label: "Q2 Y2", Target: 100_000_000, PP: 9},
	{Level: 7, Label: "Q3 Y2", Target: 500_000_000, PP: 12},
	{Level: 8, Label: "Q4 Y2", Target: 1_000_000_000, PP: 16},
}

// IllegalActions keyed by id.
var IllegalActions = map[string]IllegalAction{
	"insiderTrading": {
		Name:             "Insider Trading",
		Description:      "Trade on non-public information. Big edge, big risk.",
		SECHit:           InsiderTradeSECHit,
		ProfitMultiplier: 1.5,
		Requires:         "insiderNetwork",
	},
	"frontRunning": {
		Name:             "Front Running",
		Description:      "Trade ahead of large orders you know about.",
		SECHit:           FrontRunSECHit,
		ProfitMultiplier: 1.3,
		Requires:         "hedgeFund",
	},
	"pumpAndDump": {
		Name:             "Pump & Dump",
		Description:      "Pump a ticker, dump on the bagholders.",
		SECHit:           20,
		ProfitMultiplier: 1.8,
		Requires:         "hedgeFund",
	},
	"washTrading": {
		Name:             "Wash Trading",
		Description:      "Trade with yourself for fake volume.",
		SECHit:           8,
		ProfitMultiplier: 1.1,
		Requires:         "insiderNetwork",
	},
	"liborRigging": {
		Name:             "LIBOR Rigging",
		Description:      "Fix the rate, fix the profits.",
		SECHit:           18,
		ProfitMultiplier: 1.6,
		Requires:         "fundManager",
	},
}

// MarketEvents occasionally shock the whole market for a day.
var MarketEvents = []MarketEvent{
	{Text: "Fed raises rates unexpectedly", Effect: -0.05, Type: "macro"},
	{Text: "Fed cuts rates in emergency session", Effect: 0.06, Type: "macro"},
	{Text: "Inflation comes in hotter than expected", Effect: -0.03, Type: "macro"},
	{Text: "Jobs report smashes expectations", Effect: 0.03, Type: "macro"},
	{Text: "Major bank reports record earnings", Effect: 0.02, Type: "sector"},
	{Text: "Tech giant misses earnings by a mile", Effect: -0.04, Type: "sector"},
	{Text: "Oil supply disruption in Middle East", Effect: 0.04, Type: "commodity"},
	{Text: "New trade war tariffs announced", Effect: -0.04, Type: "macro"},
	{Text: "Crypto exchange hacked, millions stolen", Effect: -0.08, Type: "crypto"},
	{Text: "Elon tweets about Dogebiscuit", Effect: 0.15, Type: "crypto"},
	{Text: "Congress considers banning crypto", Effect: -0.10, Type: "crypto"},
	{Text: "Short squeeze on meme stock", Effect: 0.20, Type: "sector"},
	{Text: "Pandemic variant discovered", Effect: -0.06, Type: "macro"},
	{Text: "Vaccine breakthrough announced", Effect: 0.05, Type: "macro"},
	{Text: "Housing market shows signs of bubble", Effect: -0.02, Type: "macro"},
	{Text: "AI company IPO breaks records", Effect: 0.04, Type: "sector"},
	{Text: "Major data breach at retail giant", Effect: -0.03, Type: "sector"},
	{Text: "Gold hits all-time high on uncertainty", Effect: 0.03, Type: "commodity"},
	{Text: "MoonRug Token team disappears with funds", Effect: -0.50, Type: "crypto"},
	{Text: "CEO arrested for fraud", Effect: -0.08, Type: "sector"},
}

// SatiricalNews is flavor for the news feed.
var SatiricalNews = []string{
	"SEC commissioner distracted by Congressional hearing on TikTok",
	`Senator thanks "generous constituent" for donation to re-election campaign`,
	`Former regulator joins hedge fund as "Senior Advisor"`,
	`Wall Street lobbyist argues regulations are "anti-freedom"`,
	"SEC budget cut by 30% after industry lobbying",
	"Congressman who oversees banking committee buys bank stocks",
	`Federal Reserve member's spouse made "coincidental" trades before announcement`,
	"New SEC chair vows to crack down, immediately caves to pressure",
	"Whistleblower fired, rehired as consultant at 3x salary",
	`Analyst upgrades stock to "Strong Buy" after yacht trip with CEO`,
	`"Too big to fail" bank pays fine equal to 0.1% of profits`,
	`Hedge fund manager calls retail traders "unsophisticated"`,
	"Crypto bro explains why this time is different (it wasn't)",
	"Market maker accidentally reveals they can see your orders",
	"Financial advisor recommends stocks he's secretly shorting",
	"Bank creates synthetic CDO of synthetic CDOs",
	"Rating agency gives AAA to pile of garbage wrapped in a bond",
	"CEO gets $50M golden parachute after destroying company",
	"Insider trading tip shared on golf course, nobody investigates",
	"Quant fund's algorithm becomes sentient, starts a podcast",
	`Day trader discovers "one weird trick" (it's gambling)`,
	"Congress passes law making stock trading by members slightly less obviously corrupt",
	"Federal judge who owns oil stocks rules in favor of oil company",
	"Billionaire complains that taxes are too high from his tax-free yacht",
	`Prison for white collar crime described as "basically a resort"`,
}

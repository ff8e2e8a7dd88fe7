package game

// Achievements keyed by id. Entries with Title can be equipped for their
// bonus between runs.
var Achievements = map[string]Achievement{
	"maleAstrology": {
		Name: "Male Astrology", Description: "Day trade 100+ times in one run",
		Title: true, TitleDescription: "30% faster trade cooldown",
		Bonus: TitleBonus{CooldownReduction: 0.3},
	},
	"diamondHands": {
		Name: "Diamond Hands", Description: "Hold a losing position for 30+ days, then profit",
		Title: true, TitleDescription: "+10% returns on held positions",
		Bonus: TitleBonus{HoldReturnBonus: 0.10},
	},
	"paperHands": {
		Name: "Paper Hands", Description: "Sell within 1 day 50 times",
		Title: true, TitleDescription: "50% faster sell execution",
		Bonus: TitleBonus{SellSpeedBonus: 0.5},
	},
	"theOracle": {
		Name: "The Oracle", Description: "10 correct directional trades in a row",
		Title: true, TitleDescription: "See price trend indicators",
		Bonus: TitleBonus{PriceInfo: true},
	},
	"teflonDon": {
		Name: "Teflon Don", Description: "Reach 90+ SEC attention and survive the run",
		Title: true, TitleDescription: "25% slower SEC attention growth",
		Bonus: TitleBonus{SECGrowthReduction: 0.25},
	},
	"wolfOfWallSt": {
		Name: "Wolf of Wall St", Description: "Make $10M+ in a single run",
		Title: true, TitleDescription: "Start with extra $5,000",
		Bonus: TitleBonus{StartingCashBonus: 5000},
	},
	"marginCallSurvivor": {
		Name: "Margin Call Survivor", Description: "Get margin called and recover to profit",
		Title: true, TitleDescription: "+20% margin before call",
		Bonus: TitleBonus{MarginLimitBonus: 0.20},
	},
	"hodlKing": {
		Name: "HODL King", Description: "Hold crypto through a 50%+ crash and still profit",
		Title: true, TitleDescription: "15% reduced crypto volatility",
		Bonus: TitleBonus{CryptoVolBonus: 0.15},
	},
	"theLobbyist": {
		Name: "The Lobbyist", Description: "Spend $1M+ on political donations in one run",
		Title: true, TitleDescription: "30% cheaper political donations",
		Bonus: TitleBonus{DonationDiscount: 0.30},
	},
	"cleanHands": {
		Name: "Clean Hands", Description: "Complete a full run with 0 illegal actions",
		Title: true, TitleDescription: "+50% points",
		Bonus: TitleBonus{PrestigeBonus: 0.50},
	},
	"speedDemon": {
		Name: "Speed Demon", Description: "500+ trades in one run",
		Title: true, TitleDescription: "Unlock 20x speed option",
		Bonus: TitleBonus{TurboMode: true},
	},
	"literallyCriminal": {
		Name: "Literally Criminal", Description: "Get arrested 5 times across all runs",
		Title: true, TitleDescription: `Unlock "Consultant" career path`,
		Bonus: TitleBonus{ConsultantRole: true},
	},
	"firstMillion":  {Name: "Comma Club", Description: "Reach $1,000,000 net worth"},
	"bankrupt":      {Name: "GUH", Description: "Go completely bankrupt"},
	"perfectTiming": {Name: "Bought the Dip", Description: "Buy at the lowest price of the run"},
	"soldTheTop":    {Name: "Sold the Top", Description: "Sell at the highest price of the run"},
}

// AchievementChecks maps achievement id to its predicate. Predicates are
// pure functions of the end-of-run stats snapshot; each is evaluated
// independently with panic isolation, so a bad predicate can never block
// the others.
var AchievementChecks = map[string]func(Stats) bool{
	"maleAstrology":      func(s Stats) bool { return s.DayTrades >= 100 },
	"diamondHands":       func(s Stats) bool { return s.LongestLosingHoldThenProfit >= 30 },
	"paperHands":         func(s Stats) bool { return s.QuickSells >= 50 },
	"theOracle":          func(s Stats) bool { return s.MaxWinStreak >= 10 },
	"teflonDon":          func(s Stats) bool { return s.MaxSECAttention >= 90 && s.Survived },
	"wolfOfWallSt":       func(s Stats) bool { return s.MaxNetWorth >= 10_000_000 },
	"marginCallSurvivor": func(s Stats) bool { return s.MarginCallsRecovered >= 1 },
	"hodlKing":           func(s Stats) bool { return s.CryptoCrashHold },
	"theLobbyist":        func(s Stats) bool { return s.TotalDonations >= 1_000_000 },
	"cleanHands":         func(s Stats) bool { return s.IllegalActions == 0 && s.Survived },
	"speedDemon":         func(s Stats) bool { return s.TotalTrades >= 500 },
	"literallyCriminal":  func(s Stats) bool { return s.TotalArrests >= 5 },
	"firstMillion":       func(s Stats) bool { return s.MaxNetWorth >= 1_000_000 },
	"bankrupt":           func(s Stats) bool { return s.WentBankrupt },
	"perfectTiming":      func(s Stats) bool { return s.BoughtAtBottom },
	"soldTheTop":         func(s Stats) bool { return s.SoldAtTop },
}

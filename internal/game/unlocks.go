package game

// Unlocks is the full meta-progression tree, keyed by unlock id.
var Unlocks = map[string]Unlock{
	// Early game
	"leverage2x":   {Name: "Leverage 2x", Cost: 0.5, Description: "Double your position sizes", Category: "trading", LeverageLevel: 2},
	"reducedFees1": {Name: "Reduced Fees I", Cost: 1, Description: "Fees reduced by 25%", Category: "trading", FeeReduction: 0.25},

	// Basic
	"financeStocks":     {Name: "Finance Sector", Cost: 2, Description: "Unlock banks and financial services stocks", Category: "sectors", UnlocksSector: SectorFinance},
	"healthcareStocks":  {Name: "Healthcare Sector", Cost: 3, Description: "Unlock pharmaceutical and medical stocks", Category: "sectors", UnlocksSector: SectorHealthcare},
	"leverage5x":        {Name: "Leverage 5x", Cost: 3, Description: "5x position sizes", Category: "trading", LeverageLevel: 5, Requires: "leverage2x"},
	"betterRep1":        {Name: "Analyst", Cost: 4, Description: "Start as an analyst. Slightly better info.", Category: "career", RepLevel: 1},
	"morePositions":     {Name: "Portfolio Expansion", Cost: 4, Description: "Hold up to 10 positions", Category: "trading", MaxPositions: 10},
	"industrialsStocks": {Name: "Industrials Sector", Cost: 5, Description: "Unlock manufacturing and industrial stocks", Category: "sectors", UnlocksSector: SectorIndustrials},

	// Mid game
	"energyStocks":       {Name: "Energy Sector", Cost: 6, Description: "Unlock oil, gas, and energy stocks", Category: "sectors", UnlocksSector: SectorEnergy},
	"politicalDonations": {Name: "PAC Access", Cost: 6, Description: "Donate to reduce SEC heat", Category: "illegal"},
	"startingCash2x":     {Name: "Trust Fund Kid", Cost: 6, Description: "Start with $20,000", Category: "starting", CashMultiplier: 2},
	"reducedFees2":       {Name: "Reduced Fees II", Cost: 8, Description: "Fees reduced by 50%", Category: "trading", FeeReduction: 0.50, Requires: "reducedFees1"},
	"insiderNetwork":     {Name: "Insider Network", Cost: 8, Description: "Access to insider tips (risky)", Category: "illegal"},
	"techStocks":         {Name: "Tech Sector", Cost: 8, Description: "Unlock high-growth technology stocks", Category: "sectors", UnlocksSector: SectorTech},
	"lowerSurv1":         {Name: "Low Profile I", Cost: 10, Description: "SEC attention grows 20% slower", Category: "stealth", SurvReduction: 0.20},
	"betterRep2":         {Name: "Trader", Cost: 10, Description: "Start as a trader. Access to better tools.", Category: "career", RepLevel: 2, Requires: "betterRep1"},
	"algoEngine":         {Name: "Algo Engine", Cost: 12, Description: "Unlock algo trading mode", Category: "trading"},

	// Late game
	"leverage10x":    {Name: "Leverage 10x", Cost: 15, Description: "10x position sizes", Category: "trading", LeverageLevel: 10, Requires: "leverage5x"},
	"hedgeFund":      {Name: "Hedge Fund Access", Cost: 15, Description: "Trade with firm capital. Higher stakes.", Category: "career", RepLevel: 3, Requires: "betterRep2"},
	"reducedFees3":   {Name: "Reduced Fees III", Cost: 18, Description: "Fees reduced by 75%", Category: "trading", FeeReduction: 0.75, Requires: "reducedFees2"},
	"memeStocks":     {Name: "Meme Stocks", Cost: 20, Description: "Unlock WSB favorites. YOLO.", Category: "sectors", UnlocksSector: SectorMeme, Requires: "techStocks"},
	"lowerSurv2":     {Name: "Low Profile II", Cost: 20, Description: "SEC attention grows 40% slower", Category: "stealth", SurvReduction: 0.40, Requires: "lowerSurv1"},
	"fundManager":    {Name: "Fund Manager", Cost: 25, Description: "Manage OPM. AUM bonuses.", Category: "career", RepLevel: 4, Requires: "hedgeFund"},
	"startingCash5x": {Name: "Rich Parents", Cost: 25, Description: "Start with $50,000", Category: "starting", CashMultiplier: 5, Requires: "startingCash2x"},

	// Endgame
	"leverage50x": {Name: "Leverage 50x", Cost: 40, Description: "Degenerate leverage", Category: "trading", LeverageLevel: 50, Requires: "leverage10x"},

	// Risk management
	"riskManager1": {Name: "Risk Manager I", Cost: 3, Description: "Internal risk reduced by 20%", Category: "risk", RiskReduction: 0.20},
	"riskManager2": {Name: "Risk Manager II", Cost: 8, Description: "Internal risk reduced by 40%", Category: "risk", RiskReduction: 0.40, Requires: "riskManager1"},
	"riskManager3": {Name: "Risk Manager III", Cost: 15, Description: "Internal risk reduced by 60%", Category: "risk", RiskReduction: 0.60, Requires: "riskManager2"},
	"riskImmunity": {Name: "Risk Immunity", Cost: 30, Description: "Risk cap raised to 150%. Live dangerously.", Category: "risk", RiskLimitOverride: 150, Requires: "riskManager3"},

	// Starting capital extensions
	"silverSpoon":  {Name: "Silver Spoon", Cost: 35, Description: "Start with $100,000", Category: "starting", CashMultiplier: 10, Requires: "startingCash5x"},
	"oligarchHeir": {Name: "Oligarch's Heir", Cost: 50, Description: "Start with $250,000", Category: "starting", CashMultiplier: 25, Requires: "silverSpoon"},

	// Market intel
	"bloombergTerminal":    {Name: "Bloomberg Terminal", Cost: 5, Description: "See 5-day price trend arrows on assets", Category: "intel"},
	"analystReports":       {Name: "Analyst Reports", Cost: 12, Description: "See sector momentum indicators", Category: "intel", Requires: "bloombergTerminal"},
	"timeTravelersAlmanac": {Name: "Time Traveler's Almanac", Cost: 25, Description: "Preview market events 3 days early", Category: "intel", Requires: "analystReports"},

	// Stealth extension
	"ghostMode": {Name: "Ghost Mode", Cost: 35, Description: "SEC attention grows 60% slower", Category: "stealth", SurvReduction: 0.60, Requires: "lowerSurv2"},

	// Time extension
	"timeInMarket1": {Name: "Time in the Market I", Cost: 8, Description: "1 year head start before targets begin", Category: "time", ExtraYears: 1},
	"timeInMarket2": {Name: "Time in the Market II", Cost: 18, Description: "2 year head start before targets begin", Category: "time", ExtraYears: 2, Requires: "timeInMarket1"},
	"timeInMarket3": {Name: "Time in the Market III", Cost: 35, Description: "3 year head start before targets begin", Category: "time", ExtraYears: 3, Requires: "timeInMarket2"},

	// Passive income
	"dividendPortfolio": {Name: "Dividend Portfolio", Cost: 10, Description: "Earn 0.1% of net worth per day passively", Category: "passive", PassivePercent: 0.001},
	"hedgeFundFee":      {Name: "Hedge Fund Fee", Cost: 20, Description: "Earn 0.2% of net worth per day passively", Category: "passive", PassivePercent: 0.002, Requires: "dividendPortfolio"},

	// Naughty activities extensions
	"burnerPhone":     {Name: "Burner Phone", Cost: 8, Description: "Illegal actions generate 30% less SEC heat", Category: "illegal", IllegalSECReduction: 0.30, Requires: "insiderNetwork"},
	"caymanShellCorp": {Name: "Cayman Shell Corp", Cost: 25, Description: "Double profits from illegal actions", Category: "illegal", IllegalProfitMultiplier: 2.0, Requires: "burnerPhone"},

	// Connections
	"darkPoolAccess":     {Name: "Dark Pool Access", Cost: 10, Description: "Large trades generate 50% less SEC attention", Category: "connections", LargeTradeSECReduction: 0.50},
	"offshoreAccounts":   {Name: "Offshore Accounts", Cost: 15, Description: "Hide 25% of net worth from SEC suspicion", Category: "connections", NetWorthHidePercent: 0.25, Requires: "darkPoolAccess"},
	"politicianRetainer": {Name: "Politician on Retainer", Cost: 12, Description: "Political donations reduce 2x more SEC heat", Category: "connections", DonationEffectiveness: 2.0, Requires: "offshoreAccounts"},
	"lobbyistNetwork":    {Name: "Lobbyist Network", Cost: 18, Description: "SEC attention decay rate doubled", Category: "connections", DecayMultiplier: 2.0, Requires: "politicianRetainer"},

	// Survival
	"goldenParachute": {Name: "Golden Parachute", Cost: 20, Description: "Earn 50% bonus points when fired for missing targets", Category: "survival"},
	"fallGuy":         {Name: "Fall Guy", Cost: 30, Description: "Once per run: blame someone else (-40 SEC attention)", Category: "survival", SECReduction: 40, Requires: "goldenParachute"},
	"bailFund":        {Name: "Bail Fund", Cost: 40, Description: "Survive one arrest per run (SEC resets to 60)", Category: "survival", Requires: "fallGuy"},
}

package i18n

import "golang.org/x/text/language"

const (
	KeyTabRockPaperScissors = "tabs.rockPaperScissors"
	KeyTabBingo             = "tabs.bingo"
	KeyTabSicBo             = "tabs.sicBo"

	KeyRPSTitle     = "rps.title"
	KeyRPSWin       = "rps.win"
	KeyRPSLose      = "rps.lose"
	KeyRPSDraw      = "rps.draw"
	KeyRPSReady     = "rps.ready"
	KeyRPSNext      = "rps.next"
	KeyRPSRestart   = "rps.restart"
	KeyRPSRemaining = "rps.remaining"
	KeyRPSModeTitle = "rps.modeTitle"
	KeyRPSMode1     = "rps.mode1"
	KeyRPSMode3     = "rps.mode3"
	KeyRPSMode5     = "rps.mode5"

	KeyBingoTitle    = "bingo.title"
	KeyBingoSpin     = "bingo.spin"
	KeyBingoSpinning = "bingo.spinning"
	KeyBingoRigged   = "bingo.guaranteed"
	KeyBingoJackpot  = "bingo.jackpot"
	KeyBingoSmall    = "bingo.small"
	KeyBingoNone     = "bingo.none"

	KeySicBoTitle     = "sicBo.title"
	KeySicBoRules     = "sicBo.rules"
	KeySicBoCountdown = "sicBo.countdown"
	KeySicBoTimeUp    = "sicBo.timeUp"
	KeySicBoBig       = "sicBo.big"
	KeySicBoSmall     = "sicBo.small"
	KeySicBoTotal     = "sicBo.total"
	KeySicBoBalance   = "sicBo.balance"
	KeySicBoWin       = "sicBo.win"
	KeySicBoLose      = "sicBo.lose"
	KeySicBoDice      = "sicBo.dice"
)

var catalogs = map[language.Tag]map[string]string{
	language.Chinese: {
		KeyTabRockPaperScissors: "剪刀石頭布",
		KeyTabBingo:             "賓果",
		KeyTabSicBo:             "骰寶",

		KeyRPSTitle:     "剪刀石頭布",
		KeyRPSWin:       "你贏了",
		KeyRPSLose:      "你輸了",
		KeyRPSDraw:      "平手",
		KeyRPSReady:     "準備好了",
		KeyRPSNext:      "下一局",
		KeyRPSRestart:   "重新開始",
		KeyRPSRemaining: "剩餘%d局",
		KeyRPSModeTitle: "選擇決鬥方式",
		KeyRPSMode1:     "一局決勝",
		KeyRPSMode3:     "三戰兩勝",
		KeyRPSMode5:     "五戰三勝",

		KeyBingoTitle:    "🎰 Bingo 🎰",
		KeyBingoSpin:     "開始遊戲",
		KeyBingoSpinning: "旋轉中...",
		KeyBingoRigged:   "🎯 必中",
		KeyBingoJackpot:  "🎉 恭喜中獎！",
		KeyBingoSmall:    "🎊 小獎！",
		KeyBingoNone:     "😔 再接再厲",

		KeySicBoTitle:     "🎲 Sic Bo 🎲",
		KeySicBoRules:     "規則：倒數10秒內可以選擇下注大或小，贏家會得到下注金額的雙倍",
		KeySicBoCountdown: "倒數計時",
		KeySicBoTimeUp:    "時間到！",
		KeySicBoBig:       "大",
		KeySicBoSmall:     "小",
		KeySicBoTotal:     "累計%d",
		KeySicBoBalance:   "錢包剩餘：%d",
		KeySicBoWin:       "恭喜獲勝！贏得 %d",
		KeySicBoLose:      "可惜，下次再來",
		KeySicBoDice:      "骰子總和：%d",
	},
	language.English: {
		KeyTabRockPaperScissors: "Rock Paper Scissors",
		KeyTabBingo:             "Bingo",
		KeyTabSicBo:             "Sic Bo",

		KeyRPSTitle:     "Rock Paper Scissors",
		KeyRPSWin:       "You win",
		KeyRPSLose:      "You lose",
		KeyRPSDraw:      "Draw",
		KeyRPSReady:     "Ready",
		KeyRPSNext:      "Next round",
		KeyRPSRestart:   "Play again",
		KeyRPSRemaining: "%d rounds left",
		KeyRPSModeTitle: "Choose a match type",
		KeyRPSMode1:     "Single throw",
		KeyRPSMode3:     "Best of three",
		KeyRPSMode5:     "Best of five",

		KeyBingoTitle:    "🎰 Bingo 🎰",
		KeyBingoSpin:     "Spin",
		KeyBingoSpinning: "Spinning...",
		KeyBingoRigged:   "🎯 Sure win",
		KeyBingoJackpot:  "🎉 Jackpot!",
		KeyBingoSmall:    "🎊 Small prize!",
		KeyBingoNone:     "😔 Better luck next time",

		KeySicBoTitle:     "🎲 Sic Bo 🎲",
		KeySicBoRules:     "Bet on big or small within the 10 second countdown; winners get double their stake",
		KeySicBoCountdown: "Countdown",
		KeySicBoTimeUp:    "Time's up!",
		KeySicBoBig:       "Big",
		KeySicBoSmall:     "Small",
		KeySicBoTotal:     "Total %d",
		KeySicBoBalance:   "Balance: %d",
		KeySicBoWin:       "You win %d!",
		KeySicBoLose:      "No luck this time",
		KeySicBoDice:      "Dice total: %d",
	},
}

package types

// StateSnapshot:
//   version: number
//   state:
//     round: number
//     phase: "betting" | "resolving" | "settling"
//     countdown: number            // 10..0
//     balance: number
//     selected_chip: number        // omitted when none
//     placing: boolean             // chip animation in flight
//     big_total / small_total: number
//     big_bets / small_bets: { position: {x, y}, chip }[]
//     dice: [number, number, number]
//     dice_total: number           // omitted until rolled
//     outcome: "win" | "lose"      // omitted when nothing was staked
//     payout: number
//     rules: { countdown_sec, start_balance, payout_multiple }

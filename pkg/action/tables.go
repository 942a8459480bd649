package action

type branch int

const (
	failure branch = iota
	partial
	success
)

const partialMargin = 12

type payout struct {
	rewards      Rewards
	relationship int
	health       int
	message      string
}

var payouts = map[Type][3]payout{
	Farm: {
		failure: {message: "The soil is stubborn today. Nothing comes of your work."},
		partial: {rewards: Rewards{XP: 1, Food: 1}, message: "You coax a small harvest from the field."},
		success: {rewards: Rewards{XP: 3, Food: 3}, message: "You bring in a good harvest."},
	},
	Gather: {
		failure: {message: "You search for hours and return empty-handed."},
		partial: {rewards: Rewards{XP: 1, Materials: 1}, message: "You gather a few useful sticks and stones."},
		success: {rewards: Rewards{XP: 3, Materials: 3}, message: "You return with an armful of good materials."},
	},
	Trade: {
		failure: {message: "No one wants what you have to offer."},
		partial: {rewards: Rewards{XP: 1, Wealth: 1}, message: "You make a modest trade."},
		success: {rewards: Rewards{XP: 3, Wealth: 3}, message: "You strike an excellent bargain."},
	},
	Visit: {
		failure: {relationship: -1, message: "The conversation is awkward and ends early."},
		partial: {rewards: Rewards{XP: 1}, relationship: 2, message: "You pass a pleasant hour together."},
		success: {rewards: Rewards{XP: 2, SpiritEnergy: 1}, relationship: 5, message: "You share stories and grow closer."},
	},
	Hunt: {
		failure: {health: -5, message: "The prey escapes and you are hurt in the chase."},
		partial: {rewards: Rewards{XP: 2, Food: 2}, message: "You bring down small game."},
		success: {rewards: Rewards{XP: 5, Food: 5, Materials: 1}, message: "A successful hunt! Meat and hide for the tribe."},
	},
	Explore: {
		failure: {message: "You wander far but find nothing of note."},
		partial: {rewards: Rewards{XP: 2, Materials: 1}, message: "You map a new trail and pick up a few materials."},
		success: {rewards: Rewards{XP: 4, Materials: 2, SpiritEnergy: 1}, message: "You discover a sacred grove full of resources."},
	},
}

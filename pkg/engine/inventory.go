package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/tribe-engine/pkg/action"
	"github.com/jwebster45206/tribe-engine/pkg/actor"
	"github.com/jwebster45206/tribe-engine/pkg/items"
)

// ItemResponse is the result of a bag or equipment operation.
type ItemResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Reason  action.Reason `json:"reason,omitempty"`
}

func itemFailure(err error) ItemResponse {
	switch {
	case errors.Is(err, actor.ErrBadIndex):
		return ItemResponse{Message: "There is nothing in that bag slot.", Reason: action.ReasonValidation}
	case errors.Is(err, actor.ErrNotConsumable):
		return ItemResponse{Message: "You cannot use that.", Reason: action.ReasonValidation}
	case errors.Is(err, actor.ErrNotEquippable):
		return ItemResponse{Message: "You cannot wear or wield that.", Reason: action.ReasonValidation}
	case errors.Is(err, actor.ErrSlotEmpty):
		return ItemResponse{Message: "Nothing is equipped there.", Reason: action.ReasonValidation}
	case errors.Is(err, actor.ErrBagFull):
		return ItemResponse{Message: "Your bag is full.", Reason: action.ReasonState}
	case errors.Is(err, actor.ErrLevelTooLow):
		return ItemResponse{Message: "You are not experienced enough to use that yet.", Reason: action.ReasonState}
	}
	return ItemResponse{Message: err.Error(), Reason: action.ReasonState}
}

// mustDecide refuses bag changes while an animal blocks the way.
func (s *Session) mustDecide() (ItemResponse, bool) {
	if s.decision != AwaitingDecision || s.pending == nil {
		return ItemResponse{}, false
	}
	return ItemResponse{
		Message: fmt.Sprintf("The %s blocks your way. You must fight or flee.", s.pending.Name),
		Reason:  action.ReasonState,
	}, true
}

// UseItem consumes the consumable in bag slot index.
func (s *Session) UseItem(index int) ItemResponse {
	if resp, blocked := s.mustDecide(); blocked {
		return resp
	}
	msg, err := s.player.UseItem(index)
	if err != nil {
		return itemFailure(err)
	}
	return ItemResponse{Success: true, Message: msg}
}

// Equip wears or wields the item in bag slot index.
func (s *Session) Equip(index int) ItemResponse {
	if resp, blocked := s.mustDecide(); blocked {
		return resp
	}
	if index < 0 || index >= len(s.player.Bag) {
		return itemFailure(actor.ErrBadIndex)
	}
	it := s.player.Bag[index]
	if err := s.player.Equip(index); err != nil {
		return itemFailure(err)
	}
	return ItemResponse{Success: true, Message: fmt.Sprintf("You equip the %s.", it.Name)}
}

// Unequip returns the item in the named slot to the bag.
func (s *Session) Unequip(slot string) ItemResponse {
	if resp, blocked := s.mustDecide(); blocked {
		return resp
	}
	sl := items.Slot(slot)
	if !slices.Contains(items.Slots, sl) {
		return ItemResponse{Message: fmt.Sprintf("%q is not an equipment slot.", slot), Reason: action.ReasonValidation}
	}
	it := s.player.Equipment[sl]
	if err := s.player.Unequip(sl); err != nil {
		return itemFailure(err)
	}
	return ItemResponse{Success: true, Message: fmt.Sprintf("You put the %s back in your bag.", it.Name)}
}

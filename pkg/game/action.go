package game

import "chaingang-server/pkg/playable"

// Action performs a game action sent by the player
func (r *Room) Action(playerID string, message *playable.PayloadIn) error {
	switch message.Action {
	case "ante":
		return r.Ante(playerID)
	case "selectDraw":
		indexes, _ := message.AdditionalData.GetIntSlice("indices")
		return r.SelectDraw(playerID, indexes)
	case "confirmDraw":
		indexes, _ := message.AdditionalData.GetIntSlice("indices")
		return r.ConfirmDraw(playerID, indexes)
	case "betAction":
		rawKind, _ := message.AdditionalData.GetString("kind")
		kind, err := BetKindFromString(rawKind)
		if err != nil {
			return err
		}

		amount, _ := message.AdditionalData.GetInt("amount")
		return r.Bet(playerID, kind, amount)
	case "declare":
		value, _ := message.AdditionalData.GetString("value")
		return r.Declare(playerID, value)
	case "hit":
		return r.Hit(playerID)
	case "stay":
		return r.Stay(playerID)
	case "addBot":
		_, err := r.AddBot()
		return err
	}

	return ErrUnknownAction
}

package stats

import (
	"github.com/veydris/embercore/internal/config"
	"github.com/veydris/embercore/internal/model"
)

// Equip puts item into its slot on a copy of the actor and recomputes
// derived stats. The previously equipped item, if any, is returned so the
// caller can move it back to storage. When the actor is below the item's
// level requirement the actor comes back unchanged with ok=false.
func Equip(a model.Actor, item *model.Item, tun config.Tunables) (out model.Actor, replaced *model.Item, ok bool) {
	if item == nil || a.Level < item.RequiredLevel {
		return a.Clone(), nil, false
	}
	out = a.Clone()
	replaced = out.Equipment[item.Slot]
	out.Equipment[item.Slot] = item
	return Recompute(out, tun), replaced, true
}

// Unequip empties a slot on a copy of the actor and recomputes derived
// stats, returning the removed item.
func Unequip(a model.Actor, slot model.EquipSlot, tun config.Tunables) (model.Actor, *model.Item) {
	out := a.Clone()
	removed := out.Equipment[slot]
	if removed == nil {
		return out, nil
	}
	delete(out.Equipment, slot)
	return Recompute(out, tun), removed
}

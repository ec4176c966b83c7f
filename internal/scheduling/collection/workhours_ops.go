package collection

import (
	"github.com/adrienmarchand/schedcore/internal/scheduling/domain"
	"github.com/adrienmarchand/schedcore/internal/timeutil"
)

// invalidateParticipants invalidates every activity entityName effectively
// participates in, plus their incompatibles, after a work-hours change. An
// empty entityName invalidates every activity.
func (c *Collection) invalidateParticipants(entityName string) {
	for id, a := range c.activities {
		if entityName == "" || c.isEffectiveParticipant(a, entityName) {
			c.invalidateWithIncompatibles(id)
		}
	}
}

// AddGlobalWorkHours adds an interval to the shared work-hours store
// (§4.2), invalidating every activity and its incompatibles.
func (c *Collection) AddGlobalWorkHours(iv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.globalHours.AddInterval(iv); err != nil {
		return err
	}
	c.invalidateParticipants("")
	c.publish(domain.NewWorkHoursChangedEvent(""))
	return nil
}

// RemoveGlobalWorkHours removes an interval from the shared work-hours store.
func (c *Collection) RemoveGlobalWorkHours(iv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.globalHours.RemoveInterval(iv); err != nil {
		return err
	}
	c.invalidateParticipants("")
	c.publish(domain.NewWorkHoursChangedEvent(""))
	return nil
}

// UpdateGlobalWorkHours atomically replaces one global interval with another.
func (c *Collection) UpdateGlobalWorkHours(oldIv, newIv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.globalHours.UpdateInterval(oldIv, newIv); err != nil {
		return err
	}
	c.invalidateParticipants("")
	c.publish(domain.NewWorkHoursChangedEvent(""))
	return nil
}

// AddEntityWorkHours adds a custom work-hours interval to one entity,
// overriding the global store for that entity (§4.2, §4.3).
func (c *Collection) AddEntityWorkHours(entityName string, iv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.entities.Get(entityName)
	if err != nil {
		return err
	}
	if err := e.CustomHours().AddInterval(iv); err != nil {
		return err
	}
	c.invalidateParticipants(entityName)
	c.publish(domain.NewWorkHoursChangedEvent(entityName))
	return nil
}

// RemoveEntityWorkHours removes a custom work-hours interval from one entity.
func (c *Collection) RemoveEntityWorkHours(entityName string, iv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.entities.Get(entityName)
	if err != nil {
		return err
	}
	if err := e.CustomHours().RemoveInterval(iv); err != nil {
		return err
	}
	c.invalidateParticipants(entityName)
	c.publish(domain.NewWorkHoursChangedEvent(entityName))
	return nil
}

// UpdateEntityWorkHours atomically replaces one of an entity's custom
// intervals with another.
func (c *Collection) UpdateEntityWorkHours(entityName string, oldIv, newIv timeutil.TimeInterval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.entities.Get(entityName)
	if err != nil {
		return err
	}
	if err := e.CustomHours().UpdateInterval(oldIv, newIv); err != nil {
		return err
	}
	c.invalidateParticipants(entityName)
	c.publish(domain.NewWorkHoursChangedEvent(entityName))
	return nil
}

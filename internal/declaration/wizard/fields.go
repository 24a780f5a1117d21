package wizard

import (
	"travelgate/internal/declaration/models"
	dErrors "travelgate/pkg/domain-errors"
)

// Field edits are local: no collaborator is called and a later failed
// submission never rolls them back.

func (m *Machine) UpdatePassenger(d *models.Declaration, u models.PassengerUpdate) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	return d.Form.ApplyPassenger(u)
}

// SetTaxPIN records the PIN; a changed PIN voids any OTP already sent.
func (m *Machine) SetTaxPIN(d *models.Declaration, pin string) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	d.Form.SetTaxPIN(pin)
	return nil
}

func (m *Machine) UpdateTravel(d *models.Declaration, u models.TravelUpdate) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	d.Form.ApplyTravel(u)
	return nil
}

func (m *Machine) AddCountryVisited(d *models.Declaration, code string) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	return d.Form.AddCountryVisited(code)
}

func (m *Machine) RemoveCountryVisited(d *models.Declaration, code string) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	if !d.Form.RemoveCountryVisited(code) {
		return dErrors.New(dErrors.CodeNotFound, "country is not in the list")
	}
	return nil
}

func (m *Machine) UpdateDeclarationFlags(d *models.Declaration, u models.DeclarationFlags) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	return d.Form.ApplyFlags(u)
}

// SaveItem validates an item against its category and buffers it locally.
// Items are only sent when the declarations step is submitted.
func (m *Machine) SaveItem(d *models.Declaration, c models.Category, it models.Item) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	return d.Form.AddItem(c, it)
}

func (m *Machine) RemoveItem(d *models.Declaration, c models.Category, index int) error {
	if err := requireStarted(d); err != nil {
		return err
	}
	return d.Form.RemoveItem(c, index)
}

package axi

import "fmt"

// SetUnsigned writes one unsigned value to one address.
func SetUnsigned(addr uint32, value uint32, description string) *BusCommand {
	return SetUnsigneds(addr, []uint32{value}, description)
}

// SetUnsigneds writes a slice of unsigned values to consecutive addresses.
func SetUnsigneds(
	addr uint32,
	values []uint32,
	description string,
) *BusCommand {
	return BusCommandBuilder{}.
		WithStartAddress(addr).
		WithLength(len(values)).
		WithDirection(Write).
		WithData(values).
		WithDescription(description).
		Build()
}

// SetSigned writes one signed value to one address, folded into the 32-bit
// two's complement representation the bus carries.
func SetSigned(addr uint32, value int32, description string) *BusCommand {
	return SetSigneds(addr, []int32{value}, description)
}

// SetSigneds writes a slice of signed values to consecutive addresses.
func SetSigneds(
	addr uint32,
	values []int32,
	description string,
) *BusCommand {
	unsigned := make([]uint32, len(values))
	for i, v := range values {
		unsigned[i] = uint32(v)
	}

	return SetUnsigneds(addr, unsigned, description)
}

// SetBoolean writes 1 or 0 to one address.
func SetBoolean(addr uint32, value bool, description string) *BusCommand {
	var v uint32
	if value {
		v = 1
	}

	return SetUnsigned(addr, v, description)
}

// Trigger writes a 0 to one address. Event registers react to the write
// itself, so the value carried is irrelevant and kept at 0.
func Trigger(addr uint32, description string) *BusCommand {
	return SetUnsigned(addr, 0, description)
}

// A GetUnsignedsCommand reads a slice of unsigned values from consecutive
// addresses. Its result is a []uint32 rather than the raw response data.
type GetUnsignedsCommand struct {
	*BusCommand
}

// GetUnsigneds creates a command reading length values starting at addr.
func GetUnsigneds(
	addr uint32,
	length int,
	description string,
) *GetUnsignedsCommand {
	return &GetUnsignedsCommand{
		BusCommand: BusCommandBuilder{}.
			WithStartAddress(addr).
			WithLength(length).
			WithDirection(Read).
			WithDescription(description).
			Build(),
	}
}

// ProcessResponses resolves the command's Future with the read values.
func (c *GetUnsignedsCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	data, err := c.consume(read, write)

	var values []uint32
	if err == nil {
		values = make([]uint32, len(data))
		for i, d := range data {
			values[i] = *d
		}
	}

	c.future.Resolve(values, err)

	return values, err
}

// A GetUnsignedCommand reads one unsigned value. Its result is a uint32.
type GetUnsignedCommand struct {
	*BusCommand
}

// GetUnsigned creates a command reading the value at addr.
func GetUnsigned(addr uint32, description string) *GetUnsignedCommand {
	return &GetUnsignedCommand{
		BusCommand: BusCommandBuilder{}.
			WithStartAddress(addr).
			WithLength(1).
			WithDirection(Read).
			WithDescription(description).
			Build(),
	}
}

// ProcessResponses resolves the command's Future with the read value.
func (c *GetUnsignedCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	data, err := c.consume(read, write)

	var value uint32
	if err == nil {
		value = *data[0]
	}

	c.future.Resolve(value, err)

	return value, err
}

// A GetSignedCommand reads one value and interprets it as a 32-bit two's
// complement signed integer. Its result is an int32.
type GetSignedCommand struct {
	*BusCommand
}

// GetSigned creates a command reading the signed value at addr.
func GetSigned(addr uint32, description string) *GetSignedCommand {
	return &GetSignedCommand{
		BusCommand: BusCommandBuilder{}.
			WithStartAddress(addr).
			WithLength(1).
			WithDirection(Read).
			WithDescription(description).
			Build(),
	}
}

// ProcessResponses resolves the command's Future with the signed value.
func (c *GetSignedCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	data, err := c.consume(read, write)

	var value int32
	if err == nil {
		value = int32(*data[0])
	}

	c.future.Resolve(value, err)

	return value, err
}

// A GetBooleanCommand reads one value that must be 0 or 1. Its result is a
// bool. Any other value resolves the Future with an error.
type GetBooleanCommand struct {
	*BusCommand
}

// GetBoolean creates a command reading the boolean at addr.
func GetBoolean(addr uint32, description string) *GetBooleanCommand {
	return &GetBooleanCommand{
		BusCommand: BusCommandBuilder{}.
			WithStartAddress(addr).
			WithLength(1).
			WithDirection(Read).
			WithDescription(description).
			Build(),
	}
}

// ProcessResponses resolves the command's Future with the read bit.
func (c *GetBooleanCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	data, err := c.consume(read, write)

	var value bool
	if err == nil {
		switch *data[0] {
		case 0:
			value = false
		case 1:
			value = true
		default:
			err = fmt.Errorf(
				"read %d in %q where a boolean was expected",
				*data[0], c.description)
		}
	}

	c.future.Resolve(value, err)

	return value, err
}

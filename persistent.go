package nftseries

// Marshaller is anything that can be represented in binary. Marshal may
// validate the data first, so errors are to be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is implemented by every model kept in the ledger store.
// Unmarshal almost always requires a pointer receiver, which is why it is
// separate from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

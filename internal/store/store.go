package store

// Store bundles the application state. Everything lives in process memory;
// a fresh Store is empty and ready to use.
type Store struct {
	Inventory *InventoryStore
	Orders    *OrderStore
	Suppliers *SupplierStore
	Drafts    *DraftStore
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		Inventory: NewInventoryStore(),
		Orders:    NewOrderStore(),
		Suppliers: NewSupplierStore(),
		Drafts:    NewDraftStore(),
	}
}

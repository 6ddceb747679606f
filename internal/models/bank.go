package models

// BankAccount is a payee account shown to the customer for manual transfer.
type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName" validate:"required,max=100"`
	AccountNumber string `json:"accountNumber" validate:"required,digits,max=34"`
	AccountHolder string `json:"accountHolder" validate:"required,max=100"`
}

type BankAccountPatch struct {
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	AccountHolder *string `json:"accountHolder"`
}

func (patch BankAccountPatch) Apply(b BankAccount) BankAccount {
	if patch.BankName != nil {
		b.BankName = *patch.BankName
	}
	if patch.AccountNumber != nil {
		b.AccountNumber = *patch.AccountNumber
	}
	if patch.AccountHolder != nil {
		b.AccountHolder = *patch.AccountHolder
	}
	return b
}

package api

// GetBillId accessors follow protoc-gen-go naming and are safe on nil receivers, so
// interceptors can read the target bill of any request.

func (x *GetBillRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *DeleteBillRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *UpdateTitleRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *UpdateRatesRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *UpdatePaymentHandleRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *AddPersonRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *JoinBillRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *RemovePersonRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *UpdatePersonPaymentHandleRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *AddItemRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *RemoveItemRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *AssignItemRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *UnassignItemRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *SelfAssignRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *MarkPaidRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *FinalizeBillRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *ImportReceiptRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

func (x *CalculateSplitRequest) GetBillId() string {
	if x != nil {
		return x.BillId
	}
	return ""
}

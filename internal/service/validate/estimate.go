package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/apperrors"
	"github.com/fleshka4/amm-engine/internal/service/dto"
)

// EstimateRequestValidate validates an estimate before the pair is read.
func EstimateRequestValidate(req dto.EstimateRequest) error {
	var zeroAddress = common.Address{}

	if req.Pool == zeroAddress || req.Src == zeroAddress || req.Dst == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
	}

	if req.Src == req.Dst {
		return errors.Wrap(apperrors.ErrInvalidArgument, "destination address cannot be the same as source address")
	}

	if req.SrcAmount == nil || req.SrcAmount.Sign() <= 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "source amount cannot be zero or negative")
	}

	if req.SrcAmount.BitLen() > 256 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "source amount does not fit in 256 bits")
	}

	return nil
}

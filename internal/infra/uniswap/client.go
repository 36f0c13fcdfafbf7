//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

package uniswap

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	methodToken0      = "token0"
	methodToken1      = "token1"
	methodReserves    = "getReserves"
	methodTotalSupply = "totalSupply"
)

const pairABIJSON = `[
	{"inputs":[],"name":"token0","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token1","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getReserves","outputs":[{"internalType":"uint112","name":"_reserve0","type":"uint112"},{"internalType":"uint112","name":"_reserve1","type":"uint112"},{"internalType":"uint32","name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

// Client reads Uniswap V2 pair state from an Ethereum node.
type Client interface {
	// GetPairTokens returns token0 and token1 of the pair.
	GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error)
	// GetPairReserves returns the reserves of token0 and token1.
	GetPairReserves(ctx context.Context, pair common.Address) (*big.Int, *big.Int, error)
	// GetPairSupply returns the LP token supply of the pair.
	GetPairSupply(ctx context.Context, pair common.Address) (*big.Int, error)
}

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Options tunes the node calls.
type Options struct {
	// CallTimeout bounds a single attempt.
	CallTimeout time.Duration
	// MaxTries is the number of attempts per call. Zero means one.
	MaxTries uint
	// RetryInterval is the first backoff delay between attempts.
	RetryInterval time.Duration
}

type ethClientImpl struct {
	caller  EthCaller
	pairABI abi.ABI

	opts Options
}

// NewClient dials rpcURL and returns a Client.
func NewClient(rpcURL string, opts Options) (Client, error) {
	caller, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.Dial")
	}

	return newClientWithCaller(caller, opts)
}

func newClientWithCaller(caller EthCaller, opts Options) (Client, error) {
	pairABI, err := abi.JSON(strings.NewReader(pairABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	if opts.MaxTries == 0 {
		opts.MaxTries = 1
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 100 * time.Millisecond
	}

	return &ethClientImpl{
		caller:  caller,
		pairABI: pairABI,

		opts: opts,
	}, nil
}

func (c *ethClientImpl) call(ctx context.Context, to common.Address, method string) ([]interface{}, error) {
	data, err := c.pairABI.Pack(method)
	if err != nil {
		return nil, errors.Wrap(err, "c.pairABI.Pack")
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.opts.RetryInterval
	policy.MaxInterval = c.opts.RetryInterval * 10

	res, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.callOnce(ctx, ethereum.CallMsg{To: &to, Data: data})
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(c.opts.MaxTries))
	if err != nil {
		return nil, errors.Wrap(err, "c.caller.CallContract")
	}

	out, err := c.pairABI.Unpack(method, res)
	if err != nil {
		return nil, errors.Wrap(err, "c.pairABI.Unpack")
	}
	if len(out) == 0 {
		return nil, errors.Errorf("empty %s output", method)
	}

	return out, nil
}

func (c *ethClientImpl) callOnce(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if c.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.CallTimeout)
		defer cancel()
	}
	return c.caller.CallContract(ctx, msg, nil)
}

// callMany runs the view methods concurrently and returns their outputs by
// method name. Every failed call is reported.
func (c *ethClientImpl) callMany(ctx context.Context, to common.Address, methods ...string) (map[string][]interface{}, error) {
	type callResult struct {
		method string
		out    []interface{}
		err    error
	}

	var wg sync.WaitGroup
	ch := make(chan callResult, len(methods))

	wg.Add(len(methods))
	for _, method := range methods {
		go func() {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				ch <- callResult{method: method, err: errors.Wrapf(err, "%s not called", method)}
				return
			}
			out, err := c.call(ctx, to, method)
			if err != nil {
				err = errors.Wrapf(err, "failed to call %s", method)
			}
			ch <- callResult{method: method, out: out, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	outs := make(map[string][]interface{}, len(methods))
	var combinedErr error
	for res := range ch {
		if res.err != nil {
			combinedErr = multierr.Append(combinedErr, res.err)
			continue
		}
		outs[res.method] = res.out
	}
	if combinedErr != nil {
		return nil, combinedErr
	}

	return outs, nil
}

// GetPairTokens reads token0 and token1 concurrently.
func (c *ethClientImpl) GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error) {
	outs, err := c.callMany(ctx, pair, methodToken0, methodToken1)
	if err != nil {
		return common.Address{}, common.Address{}, errors.Wrap(err, "failed to get pair tokens")
	}

	token0, err0 := asAddress(outs[methodToken0][0], methodToken0)
	token1, err1 := asAddress(outs[methodToken1][0], methodToken1)
	if err := multierr.Combine(err0, err1); err != nil {
		return common.Address{}, common.Address{}, errors.Wrap(err, "failed to get pair tokens")
	}

	return token0, token1, nil
}

// GetPairReserves reads the reserves of token0 and token1.
func (c *ethClientImpl) GetPairReserves(ctx context.Context, pair common.Address) (*big.Int, *big.Int, error) {
	out, err := c.call(ctx, pair, methodReserves)
	if err != nil {
		return nil, nil, errors.Wrap(err, "c.call")
	}

	const requiredSize = 2
	if len(out) < requiredSize {
		return nil, nil, errors.Errorf("insufficient outputs from getReserves call: expected %d, got %d", requiredSize, len(out))
	}

	reserve0, err0 := asBigInt(out[0], "reserve0")
	reserve1, err1 := asBigInt(out[1], "reserve1")
	if err := multierr.Combine(err0, err1); err != nil {
		return nil, nil, err
	}

	return reserve0, reserve1, nil
}

// GetPairSupply reads the total supply of the pair's LP token.
func (c *ethClientImpl) GetPairSupply(ctx context.Context, pair common.Address) (*big.Int, error) {
	out, err := c.call(ctx, pair, methodTotalSupply)
	if err != nil {
		return nil, errors.Wrap(err, "c.call")
	}

	return asBigInt(out[0], methodTotalSupply)
}

func asAddress(v interface{}, name string) (common.Address, error) {
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, errors.Errorf("failed to cast %s result to address", name)
	}
	return addr, nil
}

func asBigInt(v interface{}, name string) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return nil, errors.Errorf("failed to cast %s to *big.Int", name)
	}
	return n, nil
}

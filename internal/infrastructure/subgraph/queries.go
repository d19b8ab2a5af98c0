package subgraph

// GraphQL documents sent to the Uniswap V3 subgraph. Each is sent verbatim
// with its variables; field aliases (pairs, pool0, pool1) are part of the
// response contract read by the Client.

const tokenFields = `
    id
    symbol
    name
    decimals
    totalSupply
    volume
    volumeUSD
    txCount
    poolCount
    totalValueLocked
    totalValueLockedUSD
    derivedETH`

const poolFields = `
    id
    token0 { id symbol name decimals derivedETH }
    token1 { id symbol name decimals derivedETH }
    feeTier
    liquidity
    sqrtPrice
    token0Price
    token1Price
    volumeUSD
    txCount
    totalValueLockedUSD
    createdAtTimestamp`

const swapFields = `
    id
    timestamp
    pool { id feeTier token0 { id symbol decimals } token1 { id symbol decimals } }
    transaction { id }
    sender
    recipient
    origin
    amount0
    amount1
    amountUSD
    logIndex`

// TokenQuery fetches a single token. Variables: id.
const TokenQuery = `query FetchToken($id: ID!) {
  token(id: $id) {` + tokenFields + `
  }
}`

// PairsForTokenQuery fetches the pools whose token0 is the given token. Variables: id.
const PairsForTokenQuery = `query FetchPairsForToken($id: String!) {
  pairs: pools(where: { token0: $id }) {` + poolFields + `
  }
}`

// SwapTransactionsQuery fetches the latest swaps of a pool.
// Variables: pairId, first, orderBy, orderDirection.
const SwapTransactionsQuery = `query FetchSwapTransactions($pairId: String!, $first: Int!, $orderBy: Swap_orderBy!, $orderDirection: OrderDirection!) {
  swaps(first: $first, orderBy: $orderBy, orderDirection: $orderDirection, where: { pool: $pairId }) {` + swapFields + `
  }
}`

// SwapsForTimestampQuery fetches the swaps of a pool inside an inclusive
// time window. Variables: pair_id, start_time, end_time.
const SwapsForTimestampQuery = `query FetchSwapsForTimestamp($pair_id: String!, $start_time: BigInt!, $end_time: BigInt!) {
  swaps(orderBy: timestamp, orderDirection: asc, where: { pool: $pair_id, timestamp_gte: $start_time, timestamp_lte: $end_time }) {` + swapFields + `
  }
}`

// SpecificPairQuery fetches the pools between two tokens in both orderings.
// Variables: token0_id, token1_id.
const SpecificPairQuery = `query FetchSpecificPair($token0_id: String!, $token1_id: String!) {
  pool0: pools(where: { token0: $token0_id, token1: $token1_id }, orderBy: volumeUSD, orderDirection: desc) {` + poolFields + `
  }
  pool1: pools(where: { token0: $token1_id, token1: $token0_id }, orderBy: volumeUSD, orderDirection: desc) {` + poolFields + `
  }
}`

package catalog

const productChannelListingUpdateMutation = `mutation ProductChannelListingUpdate($id: ID!, $input: ProductChannelListingUpdateInput!) {
  productChannelListingUpdate(id: $id, input: $input) {
    product {
      id
      channelListings {
        channel { id slug }
        isPublished
        publicationDate
        visibleInListings
        isAvailableForPurchase
        availableForPurchase
      }
      variants {
        id
        channelListings {
          channel { id }
          price { amount currency }
        }
      }
    }
    errors { field message code }
  }
}`

const productVariantCreateMutation = `mutation ProductVariantCreate($input: ProductVariantCreateInput!) {
  productVariantCreate(input: $input) {
    productVariant { id }
    errors { field message code }
  }
}`

const productVariantChannelListingUpdateMutation = `mutation ProductVariantChannelListingUpdate($id: ID!, $input: [ProductVariantChannelListingAddInput!]!) {
  productVariantChannelListingUpdate(id: $id, input: $input) {
    variant { id }
    errors { field message code }
  }
}`

const digitalContentMetadataMutation = `mutation DigitalContentAttach($id: ID!, $input: [MetadataInput!]!) {
  updateMetadata(id: $id, input: $input) {
    item { metadata { key value } }
    errors { field message code }
  }
}`

const productDeleteMutation = `mutation ProductDelete($id: ID!) {
  productDelete(id: $id) {
    product { id }
    errors { field message code }
  }
}`

const productsQuery = `query Products($ids: [ID!], $first: Int, $channel: String, $isPublished: Boolean) {
  products(first: $first, channel: $channel, filter: {ids: $ids, isPublished: $isPublished}) {
    edges {
      node {
        id
        name
        slug
        description
        created
        updatedAt
        thumbnail { url alt }
        category { id name }
        productType { id name }
        channelListings {
          channel { id slug }
          isPublished
          visibleInListings
          isAvailableForPurchase
        }
        variants {
          id
          name
          channelListings {
            channel { id }
            price { amount currency }
          }
        }
      }
    }
  }
}`

const meQuery = `query Me {
  me { id email }
}`

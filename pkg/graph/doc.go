// Package graph models the VirusTotal graph API payload.
//
// # Overview
//
// A VirusTotal graph is returned wrapped in the usual API v3 envelope:
//
//	{
//	  "data": {
//	    "attributes": {
//	      "nodes": [
//	        {"entity_id": "www.hooli.com", "type": "domain"},
//	        {"entity_id": "8.8.8.8", "type": "ip_address"}
//	      ],
//	      "links": [
//	        {"source": "www.hooli.com", "target": "relationships_resolutions_wwwhoolicom", "connection_type": "resolutions"},
//	        {"source": "relationships_resolutions_wwwhoolicom", "target": "8.8.8.8", "connection_type": "resolutions"}
//	      ]
//	    }
//	  }
//	}
//
// [Decode] unwraps the envelope into a [Graph] and reports a
// MALFORMED_RESPONSE error when data or data.attributes is missing. No other
// schema validation is performed: unknown node types and extra attributes
// are passed through untouched.
//
// # Relationship Nodes
//
// Links rarely connect two entities directly. The API routes them through a
// synthetic relationship node ("relationships_resolutions_wwwhoolicom") that
// groups every target of one relation. Such identifiers appear as link
// endpoints but never in the node list. [GroupLinks] builds the
// (source, connection type) → targets index that lets consumers walk
// source → relationship → target in two lookups.
package graph

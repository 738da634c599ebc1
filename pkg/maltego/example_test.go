package maltego_test

import (
	"fmt"

	"github.com/matzehuels/vtmaltego/pkg/maltego"
)

func ExampleDomainBlock() {
	fmt.Print(maltego.DomainBlock("4821093375102", "www.hooli.com"))
	// Output:
	// maltego.Domain,Domain Name,WHOIS Info
	// EntityID,fqdn,whois-info
	// 4821093375102,www.hooli.com,
}

func ExampleLinkRow() {
	fmt.Print(maltego.LinkRow("9012837465012", "4821093375102", "1102938475610", "resolutions"))
	// Output:
	// 9012837465012,4821093375102,1102938475610,resolutions,1,,-1,-1,
}
